package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-go-golems/chatbox/pkg/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var rootCmd = &cobra.Command{
	Use:   "chatbox",
	Short: "chatbox is a terminal chat client",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		if err := initViper(cmd.Root(), configFile); err != nil {
			return err
		}
		// reinitialize the logger now that flags, env and config file are known
		initLogger(cmd.Name() != chatCmd.Name() && cmd != cmd.Root())
		return nil
	},
	RunE:          runChat,
	SilenceUsage:  true,
	SilenceErrors: true,
}

type logConfig struct {
	WithCaller bool
	Level      string
	LogFormat  string
	LogFile    string
	// Console disables writing to stderr, used while the TUI owns the terminal.
	Console bool
}

// logFlags are bound to top level viper keys. The responder flags are bound
// to nested keys by config.BindFlags.
var logFlags = []string{"log-level", "log-format", "log-file", "with-caller", "verbose"}

func initLogger(console bool) {
	logLevel := viper.GetString("log-level")
	verbose := viper.GetBool("verbose")
	if verbose && logLevel != "trace" {
		logLevel = "debug"
	}

	logFile := viper.GetString("log-file")
	if logFile == "" && !console {
		logFile = defaultLogFile()
	}

	err := InitLogger(&logConfig{
		Level:      logLevel,
		LogFile:    logFile,
		LogFormat:  viper.GetString("log-format"),
		WithCaller: viper.GetBool("with-caller"),
		Console:    console,
	})
	cobra.CheckErr(err)
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatbox", "chatbox.log")
}

func initViper(rootCmd *cobra.Command, configPath string) error {
	viper.SetEnvPrefix("chatbox")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.chatbox")

		xdgConfigPath, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(xdgConfigPath, "chatbox"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "could not read config file")
		}
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	for _, name := range logFlags {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	if err := config.BindFlags(viper.GetViper(), flags); err != nil {
		return err
	}
	if err := viper.BindEnv("responder.openai.api-key", "CHATBOX_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return err
	}

	log.Debug().
		Str("config", viper.ConfigFileUsed()).
		Msg("Loaded configuration")

	return nil
}

func InitLogger(config *logConfig) error {
	if config.WithCaller {
		log.Logger = log.With().Caller().Logger()
	}
	// default is json
	var logWriter io.Writer
	switch {
	case !config.Console:
		logWriter = io.Discard
	case config.LogFormat == "text":
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	default:
		logWriter = os.Stderr
	}

	if config.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogFile), 0o755); err != nil {
			return errors.Wrapf(err, "could not create log directory for %s", config.LogFile)
		}
		logWriter = io.MultiWriter(
			logWriter,
			zerolog.ConsoleWriter{
				NoColor: true,
				Out: &lumberjack.Logger{
					Filename:   config.LogFile,
					MaxSize:    10, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
				},
			})
	}

	log.Logger = log.Output(logWriter)

	switch config.Level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		return errors.Errorf("invalid log level %q", config.Level)
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Bool("with-caller", false, "Log caller")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	flags.String("log-format", "text", "Log format (json, text)")
	flags.String("log-file", "", "Log file (default: stderr, or the user cache dir for the chat UI)")

	flags.String("config", "", "Path to config file (default ~/.chatbox/config.yaml)")
	flags.Bool("verbose", false, "Verbose output")

	config.AddFlags(flags)

	rootCmd.AddCommand(chatCmd, askCmd, suggestionsCmd)
}

func main() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

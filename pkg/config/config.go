package config

import (
	"strings"

	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	Responder responder.Settings `mapstructure:"responder"`
	Theme     string             `mapstructure:"theme"`
}

func Default() *Config {
	return &Config{
		Responder: responder.DefaultSettings(),
		Theme:     ThemeDark,
	}
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"responder":        "responder.kind",
	"response-timeout": "responder.timeout",
	"rules-file":       "responder.stub.rules-file",
	"openai-api-key":   "responder.openai.api-key",
	"openai-base-url":  "responder.openai.base-url",
	"model":            "responder.openai.model",
	"theme":            "theme",
}

func AddFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("responder", string(d.Responder.Kind), "Responder to use (stub, openai)")
	flags.Duration("response-timeout", d.Responder.Timeout, "Give up on a reply after this long (0 waits forever)")
	flags.String("rules-file", "", "YAML file with keyword rules for the stub responder")
	flags.String("openai-api-key", "", "OpenAI API key")
	flags.String("openai-base-url", "", "OpenAI compatible API base URL")
	flags.String("model", d.Responder.OpenAI.Model, "Model used by the openai responder")
	flags.String("theme", d.Theme, "Color theme (dark, light)")
}

func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "could not bind flag %s", name)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("responder.kind", string(d.Responder.Kind))
	v.SetDefault("responder.timeout", d.Responder.Timeout)
	v.SetDefault("responder.stub.min-delay", d.Responder.Stub.MinDelay)
	v.SetDefault("responder.stub.jitter", d.Responder.Stub.Jitter)
	v.SetDefault("responder.openai.model", d.Responder.OpenAI.Model)
	v.SetDefault("theme", d.Theme)
}

// Load decodes the configuration from v, falling back to defaults.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	ret := Default()
	if err := v.Unmarshal(ret); err != nil {
		return nil, errors.Wrap(err, "could not decode configuration")
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Config) Validate() error {
	c.Theme = strings.ToLower(c.Theme)
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return errors.Errorf("invalid theme %q", c.Theme)
	}
	switch c.Responder.Kind {
	case responder.KindStub, responder.KindOpenAI:
	default:
		return errors.Wrapf(responder.ErrUnknownKind, "%q", c.Responder.Kind)
	}
	if c.Responder.Timeout < 0 {
		return errors.New("response timeout must not be negative")
	}
	return nil
}

// ResponderLabel names the configured responder for display.
func (c *Config) ResponderLabel() string {
	if c.Responder.Kind == responder.KindOpenAI {
		return c.Responder.OpenAI.Model
	}
	return string(c.Responder.Kind)
}

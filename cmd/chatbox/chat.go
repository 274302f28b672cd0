package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/events"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/go-go-golems/chatbox/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := responder.New(cfg.Responder)
	if err != nil {
		return err
	}

	router, err := events.NewEventRouter(events.WithVerbose(viper.GetBool("verbose")))
	if err != nil {
		return err
	}
	defer func() {
		if err := router.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event router")
		}
	}()
	router.AddHandler("log", events.TopicChat, events.LogHandler)

	controller := chat.NewController(
		conversation.NewStore(),
		chat.WithEventSink(router.Sink(events.TopicChat)),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	options := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // turn on mouse support so we can track the mouse wheel
		tea.WithContext(ctx),
	}
	if !isTerminal(os.Stdin) {
		tty, err := ui.OpenTTY()
		if err != nil {
			return errors.Wrap(err, "stdin is not a terminal and no tty could be opened")
		}
		defer func() {
			_ = tty.Close()
		}()
		options = append(options, tea.WithInput(tty))
	}

	model := ui.NewModel(ctx, controller, r, ui.Settings{
		Theme:     cfg.Theme,
		ModelName: cfg.ResponderLabel(),
	})
	p := tea.NewProgram(model, options...)

	eg := errgroup.Group{}
	eg.Go(func() error {
		ret := router.Run(ctx)
		log.Debug().Err(ret).Msg("Event router stopped")
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		<-router.Running()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	return eg.Wait()
}

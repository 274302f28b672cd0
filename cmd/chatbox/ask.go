package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/events"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const defaultTranscriptWidth = 80

var askCmd = &cobra.Command{
	Use:   "ask TEXT...",
	Short: "Send each argument in turn to one conversation and print the transcript",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("print-events", false, "Print the raw pipeline events as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	printEvents, err := cmd.Flags().GetBool("print-events")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := responder.New(cfg.Responder)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	router, err := events.NewEventRouter(
		events.WithVerbose(viper.GetBool("verbose")),
		events.WithOutput(out),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := router.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event router")
		}
	}()

	if printEvents {
		router.AddHandler("raw-events-stdout", events.TopicChat, router.DumpRawEvents)
	} else {
		router.AddHandler("log", events.TopicChat, events.LogHandler)
	}

	controller := chat.NewController(
		conversation.NewStore(),
		chat.WithEventSink(router.Sink(events.TopicChat)),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	eg := errgroup.Group{}
	eg.Go(func() error {
		ret := router.Run(ctx)
		log.Debug().Err(ret).Msg("Event router stopped")
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		<-router.Running()
		return ask(ctx, controller, r, args)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	c, ok := controller.Store().ActiveConversation()
	if !ok {
		return errors.New("no conversation was started")
	}
	return printTranscript(out, c, transcriptWidth(os.Stdout))
}

// ask sends every non-empty text through the pipeline, waiting for each reply
// before sending the next.
func ask(ctx context.Context, controller *chat.Controller, r responder.Responder, texts []string) error {
	for _, text := range texts {
		resp, err := controller.Send(ctx, r, text)
		if errors.Is(err, chat.ErrEmptySubmission) {
			log.Debug().Msg("Skipping empty message")
			continue
		}
		if err != nil {
			return err
		}
		if resp.Err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

func transcriptWidth(f *os.File) int {
	if !isTerminal(f) {
		return defaultTranscriptWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTranscriptWidth
	}
	return width
}

func printTranscript(w io.Writer, c conversation.Conversation, width int) error {
	if _, err := fmt.Fprintf(w, "# %s\n", c.Title); err != nil {
		return err
	}
	for _, m := range c.Messages {
		label := string(m.Role)
		if m.Failed {
			label += " (failed)"
		}
		body := indent.String(wordwrap.String(strings.TrimSpace(m.Content), width-2), 2)
		if _, err := fmt.Fprintf(w, "\n[%s] %s\n%s\n", label, m.Time.Format("15:04:05"), body); err != nil {
			return err
		}
	}
	return nil
}

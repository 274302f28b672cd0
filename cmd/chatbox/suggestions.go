package main

import (
	"fmt"

	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/spf13/cobra"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "List the suggestion prompts offered on an empty conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, s := range chat.DefaultSuggestions {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s\n   %s\n", i+1, s.Title, s.Subtitle, s.Prompt)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

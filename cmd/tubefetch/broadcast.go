package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	tele "gopkg.in/telebot.v3"

	"github.com/tubefetch/tubefetch/internal/bot"
	"github.com/tubefetch/tubefetch/internal/broadcast"
	"github.com/tubefetch/tubefetch/internal/store"
)

// newBroadcastCommand builds the operator utility sending an announcement to
// every user the bot has ever seen. It shares the config and verbosity flags
// of the root command.
func newBroadcastCommand(configPath *string, verbose *bool) *cobra.Command {
	var message string
	var messageFile string

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Send an announcement to every known user",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := broadcastText(message, messageFile)
			if err != nil {
				return err
			}

			cfg, log, err := setup(*configPath, *verbose)
			if err != nil {
				return err
			}

			users, err := store.OpenUserRegistry(cfg.UsersFile)
			if err != nil {
				return err
			}
			defer users.Close()

			// Offline client: sending needs no poller.
			b, err := tele.NewBot(tele.Settings{Token: cfg.BotToken})
			if err != nil {
				return fmt.Errorf("create bot: %w", err)
			}

			svc := broadcast.NewService(bot.NewTelebotMessenger(b), users, log)
			delivered, err := svc.Send(text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "delivered to %d users\n", delivered)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "announcement text")
	cmd.Flags().StringVarP(&messageFile, "file", "f", "", "file containing the announcement text")
	return cmd
}

// broadcastText resolves the announcement from the flags: inline text wins,
// otherwise the file content is used.
func broadcastText(message, messageFile string) (string, error) {
	if message != "" {
		return message, nil
	}
	if messageFile == "" {
		return "", errors.New("either --message or --file is required")
	}
	data, err := os.ReadFile(messageFile)
	if err != nil {
		return "", fmt.Errorf("read message file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("message file %s is empty", messageFile)
	}
	return text, nil
}

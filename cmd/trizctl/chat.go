package main

import (
	"bufio"
	"fmt"
	"strings"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/service"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the tutor in the terminal",
	Long:  "Starts a GigaChat conversation. With --task the tutor is primed with that trainer task.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		taskIndex, _ := cmd.Flags().GetInt("task")

		ai := service.NewAIService(cfg.GigaChat, service.NewGigaChatClient(cfg.GigaChat))
		chat := service.NewChatService(ai)

		var history []model.ChatMessage
		if taskIndex >= 0 {
			catalog, err := repository.LoadCatalog(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			result, err := service.NewTrainerService(catalog).Check(taskIndex, nil)
			if err != nil {
				return err
			}
			history = append(history, model.ChatMessage{Role: model.RoleSystem, Content: result.SystemPrompt})
		}

		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !in.Scan() {
				return in.Err()
			}
			line := strings.TrimSpace(in.Text())
			if line == "" {
				continue
			}
			if line == "/exit" {
				return nil
			}

			history = append(history, model.ChatMessage{Role: model.RoleUser, Content: line})
			reply, err := chat.Complete(cmd.Context(), history, func(delta string) {
				fmt.Fprint(out, delta)
			})
			fmt.Fprintln(out)
			if err != nil {
				// drop the unanswered turn so the user can retry
				history = history[:len(history)-1]
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			history = append(history, model.ChatMessage{Role: model.RoleAssistant, Content: reply})
		}
	},
}

func init() {
	chatCmd.Flags().Int("task", -1, "Trainer task index to discuss")
}

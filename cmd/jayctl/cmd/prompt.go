package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	modelchat "github.com/ouwenyi03/Jay-Agent/internal/model/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	"github.com/ouwenyi03/Jay-Agent/internal/service/chat"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <message>",
	Short: "Print the prompt the server would send for a message right now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := postService()
		if err != nil {
			return err
		}
		profile, err := loadProfile()
		if err != nil {
			return err
		}

		// 只构建提示词，不调用模型
		svc := chat.NewService(posts, modelchat.NewFileStore(cfg.Storage.Layout()), nil, profile)
		text, err := svc.Prompt(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func loadProfile() (persona.Profile, error) {
	return persona.LoadProfile(cfg.Persona.ProfileFile)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the data directories and empty store files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := cfg.Storage.Layout()
		if err := storage.Bootstrap(layout); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, layout.PostsFile())
		fmt.Fprintln(out, layout.ConversationFile(storage.DefaultConversation))
		return nil
	},
}

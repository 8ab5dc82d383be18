package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	modelchat "github.com/ouwenyi03/Jay-Agent/internal/model/chat"
)

var (
	historyConversation string
	historyLast         int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the turns of a conversation",
	Long: `Print the stored turns of a conversation, oldest first.

Examples:
  jayctl history
  jayctl history --last 5
  jayctl history --conversation default`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLast < 0 {
			return fmt.Errorf("--last must not be negative")
		}

		store := modelchat.NewFileStore(cfg.Storage.Layout())
		turns, err := store.Load(cmd.Context(), historyConversation)
		if err != nil {
			return err
		}
		if historyLast > 0 && len(turns) > historyLast {
			turns = turns[len(turns)-historyLast:]
		}

		out := cmd.OutOrStdout()
		if len(turns) == 0 {
			fmt.Fprintln(out, "(no turns yet)")
			return nil
		}

		profile, err := loadProfile()
		if err != nil {
			return err
		}
		for _, turn := range turns {
			fmt.Fprintf(out, "[%s]\n", turn.Timestamp)
			fmt.Fprintf(out, "%s：%s\n", profile.UserLabel, turn.User)
			fmt.Fprintf(out, "%s：%s\n\n", profile.Name, turn.AI)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyConversation, "conversation", modelchat.DefaultConversationID, "conversation id")
	historyCmd.Flags().IntVar(&historyLast, "last", 0, "only print the last n turns (0 prints all)")
}

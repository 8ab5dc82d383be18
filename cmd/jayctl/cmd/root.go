package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ouwenyi03/Jay-Agent/internal/config"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jayctl",
	Short: "Operator tools for the Jay Agent data files",
	Long: `jayctl inspects and prepares the files the chat server uses.

It reads the same environment (and .env file) as the server, so DATA_ROOT
and PERSONA_FILE point it at the same posts, conversations and profile.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: failed to load .env file: %v", err)
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(bootstrapCmd, postsCmd, historyCmd, promptCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	personaservice "github.com/ouwenyi03/Jay-Agent/internal/service/persona"
	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Print the persona posts, seeding them if the store is empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := postService()
		if err != nil {
			return err
		}

		posts, err := svc.Posts(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, post := range posts {
			fmt.Fprintf(out, "%s  %s\n", post.Date, post.Content)
		}
		return nil
	},
}

func postService() (*personaservice.Service, error) {
	layout := cfg.Storage.Layout()
	if err := storage.Bootstrap(layout); err != nil {
		return nil, err
	}
	return personaservice.NewService(persona.NewFilePostStore(layout.PostsFile())), nil
}

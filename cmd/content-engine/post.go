// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/pkg/types"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Generate a LinkedIn post",
	Long: fmt.Sprintf(`Post generates a concise LinkedIn post for a topic with 3-5 hashtags and a
call to action.

Tones: %s

Use --from to regenerate a stored post with a new tone.`, joinChoices(types.PostTones)),
	Args: cobra.NoArgs,
	RunE: runPost,
}

func init() {
	postCmd.Flags().String("topic", "", "post topic")
	postCmd.Flags().String("tone", "", "post tone (default Professional)")
	postCmd.Flags().String("from", "", "regenerate the stored post with this id")
	addExportFlags(postCmd)

	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator()
	if err != nil {
		return err
	}

	var g *types.Generation
	if from := stringFlag(cmd, "from"); from != "" {
		if cmd.Flags().Changed("topic") {
			return fmt.Errorf("--from cannot be combined with --topic")
		}
		g, err = regenerateFrom(cmd.Context(), gen, from, generate.Overrides{Tone: stringFlag(cmd, "tone")}, types.KindPost)
	} else {
		g, err = gen.Post(cmd.Context(), types.PostRequest{
			Topic: stringFlag(cmd, "topic"),
			Tone:  types.Tone(stringFlag(cmd, "tone")),
		})
	}
	if err != nil {
		return err
	}
	return finish(cmd, g)
}

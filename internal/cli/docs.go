package cli

import (
	"fmt"

	"jekyll-compose/internal/docs"

	"github.com/spf13/cobra"
)

type docView struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (v docView) Text() string { return v.Markdown }

type topicsView struct {
	Topics []string `json:"topics"`
}

func (v topicsView) Text() string {
	return linesView(v.Topics).Text()
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": topicsView{Topics: docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, errUsage("unknown docs topic: %q (run `jekyll-compose docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": docView{Topic: topic, Markdown: body}})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw Markdown (no envelope)")
	return cmd
}

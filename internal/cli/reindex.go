package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"jekyll-compose/internal/index"

	"github.com/spf13/cobra"
)

type entriesView []index.Entry

func (v entriesView) Text() string {
	if len(v) == 0 {
		return "(no matches)"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, e := range v {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Collection, e.Filename, e.Title)
	}
	_ = tw.Flush()
	return b.String()
}

func newReindexCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the derived local SQLite index from the content files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ix, err := index.Open(cmdContext(cmd), root)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ix.Close()

			res, err := ix.Rebuild(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"index": index.Path(root)},
				"_hints": []string{
					"jekyll-compose search <query>",
				},
			})
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	var limit int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search titles, filenames and tags in the local index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmdContext(cmd)
			ix, err := index.Open(ctx, root)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ix.Close()

			n, err := ix.Count(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if refresh || n == 0 {
				res, err := ix.Rebuild(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				app.logger().Debug("index rebuilt", "files", res.Files, "fallbacks", res.Fallbacks)
			}

			hits, err := ix.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return writeErr(cmd, errUsage("%v", err))
			}
			return writeOut(cmd, app, map[string]any{
				"data": entriesView(hits),
				"meta": map[string]any{"count": len(hits)},
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().BoolVar(&refresh, "reindex", false, "Rebuild the index before searching")
	return cmd
}

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"jekyll-compose/internal/content"

	"github.com/spf13/cobra"
)

type linesView []string

func (v linesView) Text() string {
	return strings.Join(v, "\n")
}

type itemsView []content.Item

func (v itemsView) Text() string {
	if len(v) == 0 {
		return "(none)"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, it := range v {
		date := it.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Collection, date, it.Filename, it.ModTime.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
	return b.String()
}

func newCollectionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List posts, drafts, pages and every custom collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			names, err := content.ListCollections(root)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": linesView(names),
				"meta": map[string]any{"root": root, "count": len(names)},
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "List the Markdown files in one collection (posts, drafts, pages or custom)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := content.ListItems(root, content.CollectionFolder(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": itemsView(items),
				"meta": map[string]any{"count": len(items)},
			})
		},
	}
}

func newRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently modified posts, drafts and pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if limit <= 0 {
				limit = loadSettings(app, root).RecentLimit
			}
			items, err := content.Recent(root, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": itemsView(items),
				"meta": map[string]any{"count": len(items), "limit": limit},
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of files (default: recent_limit setting)")
	return cmd
}

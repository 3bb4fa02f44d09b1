package cli

import (
	"path/filepath"
	"strings"
	"time"

	"jekyll-compose/internal/content"
	"jekyll-compose/internal/launch"

	"github.com/spf13/cobra"
)

type createdView content.CreateResult

func (v createdView) Text() string {
	switch {
	case !v.Created:
		return "not created (overwrite declined)"
	case v.Overwrote:
		return "overwrote " + v.Path
	default:
		return "created " + v.Path
	}
}

func newNewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a post, draft, page or collection entry",
	}
	cmd.AddCommand(newCreateCmd(app, content.KindPost))
	cmd.AddCommand(newCreateCmd(app, content.KindDraft))
	cmd.AddCommand(newCreateCmd(app, content.KindPage))
	cmd.AddCommand(newCreateCmd(app, content.KindEntry))
	return cmd
}

func newCreateCmd(app *App, kind content.Kind) *cobra.Command {
	var (
		title      string
		date       string
		collection string
		yes        bool
		open       bool
	)

	short := map[content.Kind]string{
		content.KindPost:  "Create a dated post in _posts",
		content.KindDraft: "Create a draft in _drafts",
		content.KindPage:  "Create a page in _pages",
		content.KindEntry: "Create an entry in a collection folder",
	}[kind]

	cmd := &cobra.Command{
		Use:   string(kind) + " [title...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				title = strings.Join(args, " ")
			}
			root, _, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			settings := loadSettings(app, root)

			confirm := promptConfirm(cmd)
			if yes {
				confirm = func(string) bool { return true }
			}
			e := app.engine(confirm)

			var d time.Time
			if kind == content.KindPost || kind == content.KindEntry {
				if d, err = content.ParseDate(strings.TrimSpace(date)); err != nil {
					return writeErr(cmd, err)
				}
			}

			var res content.CreateResult
			switch kind {
			case content.KindPost:
				res, err = e.CreatePost(root, title, d)
			case content.KindDraft:
				res, err = e.CreateDraft(root, title)
			case content.KindPage:
				res, err = e.CreatePage(root, title)
			default:
				name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(collection), "_"))
				if name == "" {
					return writeErr(cmd, errUsage("missing --collection"))
				}
				res, err = e.Create(root, content.CreateRequest{
					Folder: content.CollectionFolder(name),
					Title:  title,
					Date:   d,
				})
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if res.Created && (open || settings.AutoOpen) {
				if err := launch.OpenPath(res.Path); err != nil {
					app.logger().Warn("open failed", "path", res.Path, "err", err)
				}
			}

			var hints []string
			if res.Created && kind == content.KindDraft {
				hints = append(hints, "jekyll-compose publish "+filepath.Base(res.Path))
			}
			if hints == nil {
				hints = []string{}
			}
			return writeOut(cmd, app, map[string]any{
				"data":   createdView(res),
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (default: positional arguments joined by spaces)")
	if kind == content.KindPost || kind == content.KindEntry {
		cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (posts default to today)")
	}
	if kind == content.KindEntry {
		cmd.Flags().StringVar(&collection, "collection", "", "Collection name, with or without the leading underscore")
		_ = cmd.MarkFlagRequired("collection")
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite an existing file without asking")
	cmd.Flags().BoolVar(&open, "open", false, "Open the new file afterwards (default: auto_open setting)")
	return cmd
}

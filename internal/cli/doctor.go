package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jekyll-compose/internal/config"
	"jekyll-compose/internal/content"
	"jekyll-compose/internal/launch"

	"github.com/spf13/cobra"
)

var errDoctorIssuesFound = errors.New("doctor found problems")

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type doctorReport struct {
	Root   string        `json:"root"`
	Checks []doctorCheck `json:"checks"`
}

func (r doctorReport) HasErrors() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return true
		}
	}
	return false
}

func (r doctorReport) Text() string {
	var b strings.Builder
	for _, c := range r.Checks {
		mark := "ok  "
		if !c.OK {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "%s %s", mark, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, ": %s", c.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool
	var skipGenerator bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the site root, settings file and generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, found, err := resolveRoot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			report := doctorReport{Root: root}
			report.Checks = append(report.Checks, doctorCheck{
				Name:   "site root",
				OK:     found,
				Detail: siteRootDetail(root, found),
			})

			settings, err := config.Load(root)
			check := doctorCheck{Name: "settings", OK: err == nil, Detail: config.Path(root)}
			if err != nil {
				check.Detail = err.Error()
				settings = config.Default()
			}
			report.Checks = append(report.Checks, check)

			if _, err := content.ListCollections(root); err != nil {
				report.Checks = append(report.Checks, doctorCheck{Name: "collections", OK: false, Detail: err.Error()})
			}

			if !skipGenerator {
				ctx, cancel := context.WithTimeout(cmdContext(cmd), 20*time.Second)
				v, err := launch.GeneratorVersion(ctx, settings.Generator, root)
				cancel()
				check := doctorCheck{Name: "generator", OK: err == nil, Detail: v}
				if err != nil {
					check.Detail = err.Error()
				}
				report.Checks = append(report.Checks, check)
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{"hasErrors": report.HasErrors()},
			}); err != nil {
				return err
			}
			if fail && report.HasErrors() {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if a check fails")
	cmd.Flags().BoolVar(&skipGenerator, "skip-generator", false, "Do not run the generator's --version")
	return cmd
}

func siteRootDetail(root string, found bool) string {
	if found {
		return root
	}
	return "no " + content.MarkerFile + " above the current directory"
}

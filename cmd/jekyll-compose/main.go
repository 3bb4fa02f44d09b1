package main

import (
	"os"
	"strings"

	"jekyll-compose/internal/cli"
)

func isContentFile(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasSuffix(s, ".md") || strings.HasSuffix(s, ".markdown")
}

// rewriteDirectOpenArgs makes `jekyll-compose <file.md>` work like
// `jekyll-compose open <file.md>`. Cobra treats the first positional token as a
// subcommand, so argv is rewritten before parsing.
func rewriteDirectOpenArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--root":   true,
		"--format": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isContentFile(argv[i+1]) {
				return splice(argv, i+1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isContentFile(a) {
			return splice(argv, i)
		}
		return argv
	}
	return argv
}

func splice(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:at]...)
	out = append(out, "open")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectOpenArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

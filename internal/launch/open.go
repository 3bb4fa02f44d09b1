package launch

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenCommand returns the platform command that opens path with its default
// application.
func OpenCommand(path string) *exec.Cmd {
	return openCommandFor(runtime.GOOS, path)
}

func openCommandFor(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// OpenPath opens path with the default application and waits for the opener to return.
func OpenPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty path")
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return OpenCommand(path).Run()
}

// EditorName picks the editor command line: override, then $VISUAL, then $EDITOR,
// then vi.
func EditorName(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// EditorCommand builds "<editor...> path". The caller attaches the terminal.
func EditorCommand(override, path string) *exec.Cmd {
	args := SplitWords(EditorName(override))
	if len(args) == 0 {
		args = []string{"vi"}
	}
	return exec.Command(args[0], append(args[1:len(args):len(args)], path)...)
}

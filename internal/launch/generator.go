package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Action is a site generator subcommand.
type Action string

const (
	ActionBuild Action = "build"
	ActionServe Action = "serve"
)

func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionBuild:
		return ActionBuild, nil
	case ActionServe:
		return ActionServe, nil
	default:
		return "", fmt.Errorf("unknown generator action %q (expected build or serve)", s)
	}
}

// GeneratorCommand prepares "<generator...> <action> [extra...]" to run in root.
// The caller wires stdio.
func GeneratorCommand(ctx context.Context, generator, root string, action Action, extra ...string) (*exec.Cmd, error) {
	argv := SplitWords(generator)
	if len(argv) == 0 {
		return nil, errors.New("generator command is empty")
	}
	if _, err := ParseAction(string(action)); err != nil {
		return nil, err
	}
	args := append(append(argv[1:len(argv):len(argv)], string(action)), extra...)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Dir = root
	return cmd, nil
}

// RunGenerator runs the generator with the given stdio and waits for it. Serving blocks
// until ctx is cancelled or the process exits.
func RunGenerator(ctx context.Context, generator, root string, action Action, stdin io.Reader, stdout, stderr io.Writer, extra ...string) error {
	cmd, err := GeneratorCommand(ctx, generator, root, action, extra...)
	if err != nil {
		return err
	}
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", generator, action, err)
	}
	return nil
}

// GeneratorVersion runs "<generator...> --version" in root and returns its first
// output line.
func GeneratorVersion(ctx context.Context, generator, root string) (string, error) {
	argv := SplitWords(generator)
	if len(argv) == 0 {
		return "", errors.New("generator command is empty")
	}
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:len(argv):len(argv)], "--version")...)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s --version: %s", generator, msg)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	return strings.TrimSpace(line), nil
}

package cli

import (
	"errors"
	"fmt"

	"jekyll-compose/internal/content"
)

type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// errorLine prefixes err with its category so scripts can tell input mistakes from
// missing files and file-system failures.
func errorLine(err error) string {
	var (
		verr *content.ValidationError
		nf   *content.NotFoundError
		ioe  *content.IOError
		uerr usageError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &uerr):
		return "error: " + err.Error()
	case errors.As(err, &nf):
		return "not found: " + err.Error()
	case errors.As(err, &ioe):
		return "io error: " + err.Error()
	default:
		return err.Error()
	}
}

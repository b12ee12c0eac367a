package utils

import (
	"fmt"
	"io"
	"strings"
)

// PrettyPrintError prints a wrapped error chain one cause per line, indenting deeper causes.
func PrettyPrintError(w io.Writer, err error) {
	parts := strings.Split(err.Error(), ": ")
	indent := 0
	for _, part := range parts {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), part)
		indent += 2
	}
}

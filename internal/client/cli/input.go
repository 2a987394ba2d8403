package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// GetSecret prints prompt to w and reads a line from the terminal without
// echo.
func GetSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// splitCommand splits a REPL line into the command, its first argument and
// the untouched remainder, so JSON bodies keep their spacing.
func splitCommand(line string) (cmd, arg, rest string) {
	line = strings.TrimSpace(line)
	cmd, line, _ = strings.Cut(line, " ")
	line = strings.TrimSpace(line)
	arg, rest, _ = strings.Cut(line, " ")
	return cmd, arg, strings.TrimSpace(rest)
}

// readBody returns the request body given on the command line: inline text,
// or the contents of a file when written as @path.
func readBody(s string) ([]byte, error) {
	if path, ok := strings.CutPrefix(s, "@"); ok {
		b, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("read body file: %w", err)
		}
		return b, nil
	}
	if s == "" {
		return nil, nil
	}
	return []byte(s), nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ReadInput returns the message from --text, --file or stdin, in that order.
// A trailing newline from a file or pipe is dropped so it does not reach the output twice.
func ReadInput(text, file string, stdin io.Reader) (string, error) {
	switch {
	case text != "" && file != "":
		return "", errors.New("use either --text or --file, not both")
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case stdin != nil:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	default:
		return "", errors.New("no input: pass --text, --file or pipe into stdin")
	}
}

// Group removes whitespace and splits the rest into blocks of n characters, the way
// intercepts were transcribed. n <= 0 returns s unchanged.
func Group(s string, n int) string {
	if n <= 0 {
		return s
	}
	var compact []rune
	for _, r := range s {
		if !unicode.IsSpace(r) {
			compact = append(compact, r)
		}
	}

	var sb strings.Builder
	for i, r := range compact {
		if i > 0 && i%n == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

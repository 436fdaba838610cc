package iojson

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Open opens path for reading. An empty path or "-" reads stdin, which must
// not be a terminal.
func Open(path string) (io.ReadCloser, error) {
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe input")
	}
	return io.NopCloser(os.Stdin), nil
}

// ReadAll reads everything from path, or stdin per Open.
func ReadAll(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

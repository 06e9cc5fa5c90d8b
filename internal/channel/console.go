package channel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Console is the command-line channel used when simulating a call locally.
type Console struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConsole creates a console channel over stdin/stdout.
func NewConsole() *Console {
	return NewConsoleWith(os.Stdin, os.Stdout)
}

// NewConsoleWith creates a console channel over explicit streams.
func NewConsoleWith(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (c *Console) Prompt(message string) {
	fmt.Fprintln(c.writer, message)
}

func (c *Console) Collect(promptText string) (string, error) {
	fmt.Fprint(c.writer, promptText)

	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Package ui is ironup's user-facing console: styled status output,
// blocking prompts, and markdown rendering for the license disclaimer.
// Everything the user is meant to read goes through here; diagnostics go
// through the log sink instead.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"

	"github.com/crofth/ironup/pkg/errors"
)

// Console writes user-facing output and reads interactive input
type Console struct {
	out    io.Writer
	in     *bufio.Reader
	format Format
}

// New creates a console on the given streams. Styling is applied only
// when out is a terminal that supports it.
func New(in io.Reader, out io.Writer) *Console {
	format := FormatText
	if f, ok := out.(*os.File); ok {
		format = DetectFormat(f)
	}
	return &Console{
		out:    out,
		in:     bufio.NewReader(in),
		format: format,
	}
}

// Print writes s verbatim
func (c *Console) Print(s string) {
	fmt.Fprint(c.out, s)
}

// Info reports a routine status line
func (c *Console) Info(msg string) {
	if c.format == FormatTerminal {
		pterm.Info.WithWriter(c.out).Println(msg)
		return
	}
	fmt.Fprintln(c.out, msg)
}

// Success reports a completed step
func (c *Console) Success(msg string) {
	if c.format == FormatTerminal {
		pterm.Success.WithWriter(c.out).Println(msg)
		return
	}
	fmt.Fprintln(c.out, msg)
}

// Warning reports a non-fatal problem
func (c *Console) Warning(msg string) {
	if c.format == FormatTerminal {
		pterm.Warning.WithWriter(c.out).Println(msg)
		return
	}
	fmt.Fprintln(c.out, "Warning: "+msg)
}

// Error reports a fatal problem
func (c *Console) Error(msg string) {
	if c.format == FormatTerminal {
		pterm.Error.WithWriter(c.out).Println(msg)
		return
	}
	fmt.Fprintln(c.out, "Error: "+msg)
}

// Ask prints prompt and blocks for one line of input, returned trimmed
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, errors.ErrInputRead, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

// Pause prints prompt and blocks until the user presses Enter
func (c *Console) Pause(prompt string) error {
	_, err := c.Ask(prompt)
	return err
}

// Markdown renders md for the terminal when styling is available,
// falling back to the raw text otherwise.
func (c *Console) Markdown(md string) {
	if c.format != FormatTerminal {
		fmt.Fprintln(c.out, md)
		return
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Fprintln(c.out, md)
		return
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		fmt.Fprintln(c.out, md)
		return
	}
	fmt.Fprint(c.out, rendered)
}

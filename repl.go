package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/sergev/while/parser"
)

func (d *driver) repl(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unexpected argument %q; use the parse command for files", c.Args().First())
	}
	format := d.format(c)
	if format != "sexpr" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}
	if c.App.Reader == os.Stdin && isInteractive() {
		return d.runInteractiveREPL(c, format)
	}
	return d.runBufferedREPL(c, bufio.NewReader(c.App.Reader), format)
}

// eval parses one accumulated chunk of input. It reports whether the chunk
// was consumed; false means more lines are needed.
func (d *driver) eval(c *cli.Context, src string, format string, atEOF bool) bool {
	if strings.TrimSpace(src) == "" {
		return true
	}
	prog, err := parser.ParseStatement(parser.NewLexer("repl", src))
	if err != nil {
		if parser.IsIncomplete(err) && !atEOF {
			return false
		}
		if rerr := d.report(c.App.ErrWriter, "repl", src, err); !errors.Is(rerr, errReported) {
			fmt.Fprintf(c.App.ErrWriter, "error: %v\n", rerr)
		}
		return true
	}
	if err := d.print(c.App.Writer, format, prog); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "error: %v\n", err)
	}
	return true
}

func (d *driver) runBufferedREPL(c *cli.Context, reader *bufio.Reader, format string) error {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read error: %w", err)
		}
		atEOF := err != nil
		buffer.WriteString(line)
		if d.eval(c, buffer.String(), format, atEOF) {
			buffer.Reset()
		}
		if atEOF {
			return nil
		}
	}
}

func (d *driver) runInteractiveREPL(c *cli.Context, format string) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if d.conf.History != "" {
		if f, err := os.Open(d.conf.History); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(d.conf.History); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "while> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(c.App.Writer)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(c.App.Writer)
				return nil
			default:
				return fmt.Errorf("read error: %w", err)
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if !d.eval(c, src, format, false) {
			continue
		}
		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
	}
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

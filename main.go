package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/sergev/while/ast"
	"github.com/sergev/while/internal/config"
	"github.com/sergev/while/parser"
	"github.com/sergev/while/sexpr"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("error reported")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "while: %v\n", err)
		}
		os.Exit(1)
	}
}

type driver struct {
	conf     config.Config
	log      *slog.Logger
	errColor *color.Color
	posColor *color.Color
}

func newApp() *cli.App {
	d := &driver{}
	formatFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: sexpr or yaml",
		}
	}
	sourceFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "expr",
			Aliases: []string{"e"},
			Usage:   "Parse a string instead of a file",
		}
	}
	return &cli.App{
		Name:                   "while",
		Usage:                  "Syntax analyzer for the While language",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				EnvVars: []string{config.EnvVar},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug information to stderr",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored diagnostics",
			},
		},
		Before: d.setup,
		Action: d.repl,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse a program and print its syntax tree",
				ArgsUsage: "[file|-]",
				Flags: []cli.Flag{
					sourceFlag(),
					formatFlag(),
					&cli.StringFlag{
						Name:  "entry",
						Usage: "Grammar entry point: " + entryList(),
					},
				},
				Action: d.parse,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a program",
				ArgsUsage: "[file|-]",
				Flags:     []cli.Flag{sourceFlag()},
				Action:    d.tokens,
			},
			{
				Name:      "vars",
				Usage:     "Print the variables and integer constants of a program",
				ArgsUsage: "[file|-]",
				Flags:     []cli.Flag{sourceFlag()},
				Action:    d.vars,
			},
			{
				Name:   "repl",
				Usage:  "Parse statements interactively",
				Flags:  []cli.Flag{formatFlag()},
				Action: d.repl,
			},
		},
	}
}

func entryList() string {
	names := make([]string, len(parser.Entries))
	for i, e := range parser.Entries {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

func (d *driver) setup(c *cli.Context) error {
	path := c.String("config")
	conf, err := config.Load(config.Path(path), path != "")
	if err != nil {
		return err
	}
	d.conf = conf

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	d.log = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	d.errColor = color.New(color.FgRed)
	d.posColor = color.New(color.Bold)
	if c.Bool("no-color") || !conf.Color {
		d.errColor.DisableColor()
		d.posColor.DisableColor()
	}
	return nil
}

// source returns the program text selected by --expr or the first
// argument, and a name for diagnostics.
func (d *driver) source(c *cli.Context) (string, string, error) {
	if c.IsSet("expr") {
		return c.String("expr"), "expr", nil
	}
	name := c.Args().First()
	var (
		data []byte
		err  error
	)
	switch name {
	case "", "-":
		name = "stdin"
		data, err = io.ReadAll(c.App.Reader)
	default:
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", "", err
	}
	return string(data), name, nil
}

func (d *driver) format(c *cli.Context) string {
	if f := c.String("format"); f != "" {
		return f
	}
	return d.conf.Format
}

func (d *driver) parse(c *cli.Context) error {
	src, name, err := d.source(c)
	if err != nil {
		return err
	}
	entry := parser.Entry(d.conf.Entry)
	if c.IsSet("entry") {
		entry = parser.Entry(c.String("entry"))
	}

	start := time.Now()
	node, err := parser.ParseEntry(entry, parser.NewLexer(name, src))
	if err != nil {
		return d.report(c.App.ErrWriter, name, src, err)
	}
	d.log.Debug("parsed", "file", name, "entry", entry, "duration", time.Since(start))
	return d.print(c.App.Writer, d.format(c), node)
}

func (d *driver) print(w io.Writer, format string, node ast.Node) error {
	switch format {
	case "sexpr":
		_, err := fmt.Fprintln(w, sexpr.Format(node))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (d *driver) tokens(c *cli.Context) error {
	src, name, err := d.source(c)
	if err != nil {
		return err
	}
	tokens, err := parser.Lex(src)
	for _, tok := range tokens {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", tok.Pos, tok.Type, tok.Lexeme)
	}
	d.log.Debug("lexed", "file", name, "tokens", len(tokens))
	if err != nil {
		return d.report(c.App.ErrWriter, name, src, err)
	}
	return nil
}

func (d *driver) vars(c *cli.Context) error {
	src, name, err := d.source(c)
	if err != nil {
		return err
	}
	prog, err := parser.ParseStatement(parser.NewLexer(name, src))
	if err != nil {
		return d.report(c.App.ErrWriter, name, src, err)
	}
	consts := ast.Constants(prog)
	values := make([]string, len(consts))
	for i, n := range consts {
		values[i] = fmt.Sprint(n)
	}
	fmt.Fprintf(c.App.Writer, "vars: %s\n", strings.Join(ast.Vars(prog), " "))
	fmt.Fprintf(c.App.Writer, "constants: %s\n", strings.Join(values, " "))
	return nil
}

// report prints a diagnostic for a parse failure, quoting the offending
// source line when the error carries a position.
func (d *driver) report(w io.Writer, name, src string, err error) error {
	pos, ok := errorPos(err)
	if !ok {
		return err
	}
	d.posColor.Fprintf(w, "%s:", name)
	d.errColor.Fprintf(w, "%s\n", err)
	if line, ok := sourceLine(src, pos.Line); ok && pos.Column > 0 {
		fmt.Fprintf(w, "\t%s\n\t%s^\n", line, strings.Repeat(" ", pos.Column-1))
	}
	return errReported
}

func errorPos(err error) (ast.Position, bool) {
	var syntaxErr *parser.Error
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Pos(), true
	}
	var lexErr *parser.LexicalError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	return ast.Position{}, false
}

func sourceLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.ReplaceAll(lines[line-1], "\t", " "), true
}

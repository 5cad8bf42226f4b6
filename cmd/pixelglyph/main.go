package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"pixelglyph/internal/render"
)

// Options are the command line flags.
type Options struct {
	Width     int    `short:"w" long:"width" description:"Output width in columns; 0 derives it from --height"`
	Height    int    `short:"H" long:"height" description:"Output height in rows; 0 derives it from --width"`
	Threshold uint8  `short:"t" long:"threshold" description:"Pixels with alpha at or below this render blank" default:"0"`
	Color     string `long:"color" description:"When to emit color escapes" choice:"auto" choice:"always" choice:"never" default:"always"`
	Mode      string `long:"mode" description:"Color escape flavor" choice:"truecolor" choice:"256" choice:"auto" default:"truecolor"`
	Luma      string `long:"luma" description:"Intensity formula" choice:"reference" choice:"rec601" default:"reference"`
	Trailer   string `long:"trailer" description:"End of output when a color is open" choice:"reset" choice:"reference" default:"reset"`
	Ramp      string `long:"ramp" description:"Glyphs ordered emptiest to fullest (default \" .:-=+*#%@\")"`
	Filter    string `long:"filter" description:"Resampling kernel" choice:"nearest" choice:"bilinear" choice:"catmullrom" default:"nearest"`
	Output    string `short:"o" long:"out" description:"Write to this file instead of stdout"`
	Verbose   bool   `short:"v" long:"verbose" description:"Log render details to stderr"`

	Args struct {
		Image string `positional-arg-name:"image" description:"Image file, or - for stdin"`
	} `positional-args:"yes" required:"yes"`
}

var errNoSize = errors.New("one of --width or --height is required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, stdoutIsTerminal))
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// run executes the command and returns the process exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer, isTerminal func() bool) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(argv); err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer render.SetLogger(nil)
	}

	if err := execute(&opts, stdin, stdout, isTerminal, os.Getenv); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func execute(opts *Options, stdin io.Reader, stdout io.Writer, isTerminal func() bool, getenv func(string) string) error {
	if opts.Width <= 0 && opts.Height <= 0 {
		return errNoSize
	}

	tty := opts.Output == "" && isTerminal()
	rOpts, err := opts.rendererOptions(tty, getenv)
	if err != nil {
		return err
	}

	var in io.Reader = stdin
	if opts.Args.Image != "-" {
		f, err := os.Open(opts.Args.Image)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	bw := bufio.NewWriter(out)
	if err := render.New(rOpts...).RenderReader(bw, in, opts.Width, opts.Height); err != nil {
		return err
	}
	bw.WriteString("\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// rendererOptions maps flags to render options. tty reports whether the
// output goes to a terminal, which decides --color=auto.
func (o *Options) rendererOptions(tty bool, getenv func(string) string) ([]render.Option, error) {
	mode, err := o.colorMode(tty, getenv)
	if err != nil {
		return nil, err
	}
	luma, err := render.ParseLuma(o.Luma)
	if err != nil {
		return nil, err
	}
	trailer, err := render.ParseTrailer(o.Trailer)
	if err != nil {
		return nil, err
	}
	filter, err := render.ParseFilter(o.Filter)
	if err != nil {
		return nil, err
	}

	return []render.Option{
		render.WithAlphaThreshold(o.Threshold),
		render.WithColorMode(mode),
		render.WithLuma(luma),
		render.WithTrailer(trailer),
		render.WithRamp(o.Ramp),
		render.WithFilter(filter),
	}, nil
}

func (o *Options) colorMode(tty bool, getenv func(string) string) (render.ColorMode, error) {
	switch o.Color {
	case "never":
		return render.ColorNone, nil
	case "auto":
		if !tty {
			return render.ColorNone, nil
		}
	}
	if o.Mode == "auto" {
		return render.DetectColorMode(getenv), nil
	}
	return render.ParseColorMode(o.Mode)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	gpuasync "github.com/wippyai/gpu-async"
	"github.com/wippyai/gpu-async/rewrite"
	"github.com/wippyai/gpu-async/text"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Deferred
// cleanups, such as flushing the verbose logger, complete before it returns.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gpuasync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		outFile     = fs.String("o", "", "Output file (single input only, default stdout)")
		outDir      = fs.String("outdir", "", "Output directory, one converted file per input")
		maxIter     = fs.Int("max-iter", rewrite.DefaultMaxIterations, "Maximum number of rewrite sweeps")
		verbose     = fs.Bool("v", false, "Log every pattern application to stderr")
		stats       = fs.Bool("stats", false, "Print a summary of the converted module to stderr")
		interactive = fs.Bool("i", false, "Interactive mode: step through the rewrite sweeps")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gpuasync [-o out.ir] [-stats] [-v] <file.ir>")
		fmt.Fprintln(stderr, "       gpuasync -outdir <dir> <file.ir>...")
		fmt.Fprintln(stderr, "       gpuasync -i <file.ir>  (interactive mode)")
		fmt.Fprintln(stderr, "Reads stdin when no file is given.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	inputs := fs.Args()

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if *interactive {
		if len(inputs) != 1 {
			fs.Usage()
			return 1
		}
		if err := runInteractive(inputs[0], *maxIter); err != nil {
			return report(stderr, err)
		}
		return 0
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return report(stderr, errors.Wrap(err, "create logger"))
		}
		logger = l
		defer logger.Sync() //nolint:errcheck
	}
	cfg := gpuasync.Config{Logger: logger, MaxIterations: *maxIter}
	out := output{stdout: stdout, stderr: stderr, stats: *stats}

	var err error
	switch {
	case *outDir != "":
		err = out.convertAll(inputs, *outDir, cfg)
	case len(inputs) > 1:
		err = errors.New("several inputs need -outdir")
	default:
		in := "-"
		if len(inputs) == 1 {
			in = inputs[0]
		}
		err = out.convertOne(in, *outFile, cfg)
	}
	if err != nil {
		return report(stderr, err)
	}
	return 0
}

func report(w io.Writer, err error) int {
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	return 1
}

// output holds where converted modules and summaries go.
type output struct {
	stdout, stderr io.Writer
	stats          bool
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

func (o output) convertOne(in, out string, cfg gpuasync.Config) error {
	src, err := readInput(in)
	if err != nil {
		return err
	}
	module, err := text.Parse(src)
	if err != nil {
		return errors.WithMessagef(err, "parse %s", in)
	}
	res, err := gpuasync.Convert(module, cfg)
	if err != nil {
		return errors.WithMessage(err, in)
	}

	result := text.Print(module)
	if out == "" {
		fmt.Fprint(o.stdout, result)
	} else if err := os.WriteFile(out, []byte(result), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}
	if o.stats {
		fmt.Fprint(o.stderr, renderStats(in, res, collectStats(module)))
	}
	return nil
}

func (o output) convertAll(inputs []string, dir string, cfg gpuasync.Config) error {
	if len(inputs) == 0 {
		return errors.New("-outdir needs at least one input file")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	var bar *progressbar.ProgressBar
	if len(inputs) > 1 && term.IsTerminal(int(os.Stderr.Fd())) && !o.stats {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, in := range inputs {
		out := filepath.Join(dir, filepath.Base(in))
		if err := o.convertOne(in, out, cfg); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// Command artwizard serves the sketch and cartoon page and applies the
// same filters to files from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wbrown/artwizard"
	"github.com/wbrown/artwizard/imageutil"
	"github.com/wbrown/artwizard/internal/config"
	"github.com/wbrown/artwizard/internal/log"
	"github.com/wbrown/artwizard/web"
)

const usage = `usage: artwizard <command> [flags]

commands:
  serve     run the web page (default)
  sketch    write a pencil sketch of -input
  cartoon   write a cartoonified copy of -input
  compare   write original, sketch and cartoon side by side
`

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(args)
	case "sketch":
		err = filter(cmd, artwizard.Pencil, args)
	case "cartoon":
		err = filter(cmd, artwizard.Cartoon, args)
	case "compare":
		err = compare(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "artwizard %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// newTransformer resolves the named backend; an empty name selects the
// default.
func newTransformer(name string, previewWidth int) (*artwizard.Transformer, error) {
	backend, err := artwizard.LookupBackend(name)
	if err != nil {
		return nil, err
	}
	return artwizard.NewTransformer(
		artwizard.WithBackend(backend),
		artwizard.WithPreviewWidth(previewWidth),
	), nil
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "",
		"Path to a YAML config file")
	listen := fs.String("listen", "",
		"Address to listen on (overrides config)")
	backend := fs.String("backend", "",
		"Filter backend: "+fmt.Sprint(artwizard.BackendNames()))
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	log.Init(cfg.LogLevel, cfg.LogFormat)

	tr, err := newTransformer(cfg.Backend, cfg.PreviewMaxWidth)
	if err != nil {
		return err
	}
	srv := web.NewServer(cfg, tr)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case s := <-sig:
		log.Info("shutting down", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// imageFlags registers the flags shared by the file commands.
func imageFlags(fs *flag.FlagSet, defaultOutput string) (input, output, backend *string) {
	input = fs.String("input", "",
		"Path to the input image file (required)")
	output = fs.String("output", defaultOutput,
		"Path to save the output; the extension selects the format")
	backend = fs.String("backend", artwizard.DefaultBackend,
		"Filter backend: "+fmt.Sprint(artwizard.BackendNames()))
	return input, output, backend
}

func loadInput(fs *flag.FlagSet, path string) (*imageutil.RGBAImage, error) {
	if path == "" {
		fs.Usage()
		return nil, errors.New("please provide the image using the -input flag")
	}
	return imageutil.LoadImage(path)
}

func filter(name string, kind artwizard.FilterKind, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	input, output, backend := imageFlags(fs, kind.Filename())
	fs.Parse(args)

	img, err := loadInput(fs, *input)
	if err != nil {
		return err
	}
	tr, err := newTransformer(*backend, 0)
	if err != nil {
		return err
	}
	res, err := tr.Transform(kind, img)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(res.Image, *output); err != nil {
		return err
	}
	fmt.Printf("%s written to %s (%dx%d, %s backend, %v)\n",
		kind, *output, img.Width(), img.Height(), res.Backend, res.Duration)
	return nil
}

func compare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	input, output, backend := imageFlags(fs, "comparison.png")
	opts := artwizard.DefaultComparisonOptions()
	fs.IntVar(&opts.PanelWidth, "width", opts.PanelWidth,
		"Width of each panel, 0 keeps full size")
	fs.IntVar(&opts.Padding, "padding", opts.Padding,
		"Padding around panels in pixels")
	fs.Float64Var(&opts.FontSize, "fontsize", opts.FontSize,
		"Caption size in points")
	fs.Parse(args)

	img, err := loadInput(fs, *input)
	if err != nil {
		return err
	}
	tr, err := newTransformer(*backend, 0)
	if err != nil {
		return err
	}
	sheet, err := tr.RenderComparison(img, opts)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(sheet, *output); err != nil {
		return err
	}
	fmt.Printf("Comparison written to %s (%dx%d)\n", *output, sheet.Width(), sheet.Height())
	return nil
}

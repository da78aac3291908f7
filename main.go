package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hippopotamus-prime/go-raytracer/pkg/loaders"
	"github.com/hippopotamus-prime/go-raytracer/pkg/ppm"
	"github.com/hippopotamus-prime/go-raytracer/pkg/renderer"
	"github.com/hippopotamus-prime/go-raytracer/pkg/scene"
)

var (
	defaults   = renderer.DefaultConfig()
	configPath = flag.String("config", "", "TOML configuration file with the same settings as the flags")
	output     = flag.String("output", defaults.Output, "output image path (.ppm, .png or .gz)")
	shading    = flag.String("shading", defaults.Shading, "shading model: phong or blinn-phong")
	maxDepth   = flag.Int("depth", defaults.MaxDepth, "recursion limit for reflection and refraction")
	workers    = flag.Int("workers", defaults.Workers, "worker goroutines, 0 means one per CPU")
	tileSize   = flag.Int("tile-size", defaults.TileSize, "square tile edge in pixels")
	quiet      = flag.Bool("quiet", defaults.Quiet, "suppress progress output")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: go-raytracer [flags] [scene.nff]\n")
	fmt.Fprintf(os.Stderr, "Renders a scene in Neutral File Format, read from the named file or stdin.\n\n")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 on success, 1 when the scene or
// configuration could not be read, 2 when rendering or writing the image
// failed.
func run() int {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one scene file may be given")
		flag.Usage()
		return 1
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg, err := resolveConfig(explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sc, err := loadScene(flag.Arg(0), loaders.Options{BlinnPhong: cfg.BlinnPhong()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var logger renderer.Logger = renderer.DefaultLogger{}
	if cfg.Quiet {
		logger = renderer.NopLogger{}
	}

	r, err := renderer.NewRenderer(sc, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	img, _, err := r.Render(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if err := ppm.WriteFile(cfg.Output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// resolveConfig merges the configuration sources: defaults first, then the
// config file if one was given, then any flag set explicitly on the command
// line. explicit holds the names of flags that appeared on the command line.
func resolveConfig(explicit map[string]bool) (renderer.Config, error) {
	cfg := renderer.DefaultConfig()

	if *configPath != "" {
		loaded, err := renderer.LoadConfig(*configPath)
		if err != nil {
			return renderer.Config{}, err
		}
		cfg = loaded
	}

	if explicit["output"] {
		cfg.Output = *output
	}
	if explicit["shading"] {
		cfg.Shading = *shading
	}
	if explicit["depth"] {
		cfg.MaxDepth = *maxDepth
	}
	if explicit["workers"] {
		cfg.Workers = *workers
	}
	if explicit["tile-size"] {
		cfg.TileSize = *tileSize
	}
	if explicit["quiet"] {
		cfg.Quiet = *quiet
	}

	if err := cfg.Validate(); err != nil {
		return renderer.Config{}, err
	}
	return cfg, nil
}

// loadScene reads the NFF scene from the named file, or from stdin when the
// name is empty.
func loadScene(filename string, opts loaders.Options) (*scene.Scene, error) {
	if filename == "" {
		return loaders.ParseNFF(os.Stdin, opts)
	}
	return loaders.LoadNFF(filename, opts)
}

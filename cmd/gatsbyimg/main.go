// Command gatsbyimg plans a responsive variant set for one source image
// and prints the resulting descriptor as JSON.
//
// The request is described in a YAML file:
//
//	layout: constrained
//	maxWidth: 800
//	placeholder: blurred
//	secondaryFormat: webp
//	quality: 80
//
// Usage:
//
//	gatsbyimg -source hero.jpg -request request.yaml -out public/static
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kaneshin/gatsby"
	"github.com/kaneshin/gatsby/cache"
	"github.com/kaneshin/gatsby/resize"
	"github.com/kaneshin/gatsby/sizes"
)

// request mirrors gatsby.LayoutArgs with YAML-friendly string enums.
type request struct {
	Layout          string         `yaml:"layout"`
	Placeholder     string         `yaml:"placeholder"`
	Fit             string         `yaml:"fit"`
	Width           int            `yaml:"width"`
	Height          int            `yaml:"height"`
	MaxWidth        int            `yaml:"maxWidth"`
	MaxHeight       int            `yaml:"maxHeight"`
	Format          string         `yaml:"format"`
	SecondaryFormat string         `yaml:"secondaryFormat"`
	Base64Width     int            `yaml:"base64Width"`
	Base64Height    int            `yaml:"base64Height"`
	Quality         int            `yaml:"quality"`
	TraceOptions    map[string]any `yaml:"traceOptions"`
	Extra           map[string]any `yaml:"extra"`
}

// toArgs validates the string enums and builds the library request.
func (r request) toArgs() (gatsby.LayoutArgs, error) {
	layout, err := gatsby.ParseLayout(r.Layout)
	if err != nil {
		return gatsby.LayoutArgs{}, err
	}
	placeholder, err := gatsby.ParsePlaceholder(r.Placeholder)
	if err != nil {
		return gatsby.LayoutArgs{}, err
	}
	fit, err := gatsby.ParseFit(r.Fit)
	if err != nil {
		return gatsby.LayoutArgs{}, err
	}

	return gatsby.LayoutArgs{
		Layout:          layout,
		Placeholder:     placeholder,
		Fit:             fit,
		Width:           r.Width,
		Height:          r.Height,
		MaxWidth:        r.MaxWidth,
		MaxHeight:       r.MaxHeight,
		Format:          gatsby.Format(r.Format),
		SecondaryFormat: gatsby.Format(r.SecondaryFormat),
		Base64Width:     r.Base64Width,
		Base64Height:    r.Base64Height,
		Quality:         r.Quality,
		TraceOptions:    r.TraceOptions,
		Extra:           r.Extra,
	}, nil
}

func main() {
	var (
		source      = flag.String("source", "", "source image path (required)")
		requestPath = flag.String("request", "", "YAML request file (defaults apply when omitted)")
		outDir      = flag.String("out", "public/static", "output directory for variant files")
		verbose     = flag.Bool("v", false, "enable debug logging to stderr")
	)
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		gatsby.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var req request
	if *requestPath != "" {
		data, err := os.ReadFile(*requestPath)
		if err != nil {
			log.Fatalf("read request: %v", err)
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			log.Fatalf("parse request: %v", err)
		}
	}

	args, err := req.toArgs()
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}

	p := gatsby.New(
		gatsby.WithResizer(resize.New(resize.WithOutputDir(*outDir))),
		gatsby.WithSizer(sizes.Default{}),
		gatsby.WithMetadataResolver(gatsby.NewMetadataResolver(
			cache.New[string, *gatsby.Metadata](256),
		)),
	)

	desc, err := p.Generate(context.Background(), *source, args)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if desc == nil {
		log.Fatal("no variants could be produced")
	}

	out, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		log.Fatalf("encode descriptor: %v", err)
	}
	fmt.Println(string(out))
}

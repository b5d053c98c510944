package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/seismocore/internal/gridviz"
	"github.com/banshee-data/seismocore/internal/security"
)

func handlePNG(args []string) {
	fs := flag.NewFlagSet("png", flag.ExitOnError)
	hdrPath := fs.String("hdr", "", "path to the grid .hdr file (required)")
	bufPath := fs.String("buf", "", "path to the grid .buf file (required)")
	depthIndex := fs.Int("depth-index", 0, "iz index of the depth slice to render")
	out := fs.String("out", "", "output PNG path (required)")
	title := fs.String("title", "", "plot title")
	fs.Parse(args)

	if *hdrPath == "" || *bufPath == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Error: --hdr, --buf and --out flags are required")
		fs.Usage()
		os.Exit(1)
	}
	if err := security.ValidateExportPath(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g, _, err := loadGrid(appFS, *hdrPath, *bufPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load grid: %v\n", err)
		os.Exit(1)
	}

	plotTitle := *title
	if plotTitle == "" {
		plotTitle = fmt.Sprintf("%s depth slice iz=%d", g.Title, *depthIndex)
	}

	if err := gridviz.SaveDepthSliceHeatmap(g, *depthIndex, plotTitle, *out); err != nil {
		fmt.Fprintf(os.Stderr, "render heatmap: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

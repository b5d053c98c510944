package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/seismocore/internal/gridviz"
	"github.com/banshee-data/seismocore/internal/security"
)

// handleHTML renders a depth slice as an interactive HTML scatter plot via
// gridviz.SaveDepthSliceHTML. Unlike png's --out (which must be an explicit
// path), --out here is optional: when omitted it's derived from the grid's
// title so callers scripting over many grids don't have to name every file.
func handleHTML(args []string) {
	fs := flag.NewFlagSet("html", flag.ExitOnError)
	hdrPath := fs.String("hdr", "", "path to the grid .hdr file (required)")
	bufPath := fs.String("buf", "", "path to the grid .buf file (required)")
	depthIndex := fs.Int("depth-index", 0, "iz index of the depth slice to render")
	stride := fs.Int("stride", 1, "decimation stride along x/y")
	out := fs.String("out", "", "output HTML path (default: derived from the grid title)")
	title := fs.String("title", "", "plot title")
	fs.Parse(args)

	if *hdrPath == "" || *bufPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --hdr and --buf flags are required")
		fs.Usage()
		os.Exit(1)
	}

	g, _, err := loadGrid(appFS, *hdrPath, *bufPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load grid: %v\n", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = security.SanitizeFilename(g.Title) + ".html"
	}
	if err := security.ValidateOutputPath(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plotTitle := *title
	if plotTitle == "" {
		plotTitle = fmt.Sprintf("%s depth slice iz=%d", g.Title, *depthIndex)
	}

	if err := gridviz.SaveDepthSliceHTML(g, *depthIndex, *stride, plotTitle, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "render HTML: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outPath)
}

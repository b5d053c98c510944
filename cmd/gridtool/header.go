package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/seismocore/internal/gridcore"
)

func handleHeader(args []string) {
	fs := flag.NewFlagSet("header", flag.ExitOnError)
	hdrPath := fs.String("hdr", "", "path to the grid .hdr file (required)")
	fs.Parse(args)

	if *hdrPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --hdr flag is required")
		fs.Usage()
		os.Exit(1)
	}

	f, err := appFS.Open(*hdrPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open header: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	desc, transform, err := gridcore.ReadHeader(f, *hdrPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read header: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("kind:       %s\n", desc.Kind)
	fmt.Printf("dimensions: %d x %d x %d\n", desc.Nx, desc.Ny, desc.Nz)
	fmt.Printf("origin:     (%g, %g, %g)\n", desc.OrigX, desc.OrigY, desc.OrigZ)
	fmt.Printf("step:       (%g, %g, %g)\n", desc.Dx, desc.Dy, desc.Dz)
	fmt.Printf("transform:  %s  LatOrig %g LongOrig %g RotCW %g\n",
		transform.Kind, transform.OrigLat, transform.OrigLon, transform.RotAngle)
	if desc.Cascading {
		fmt.Printf("cascading:  merge depths %v\n", desc.MergeDepths)
	}
}

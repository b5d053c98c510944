package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/seismocore/internal/gridcore"
	"github.com/banshee-data/seismocore/internal/security"
)

// handleToUniform resamples a source grid (uniform or cascading) onto a
// freshly-allocated uniform-layout grid of the requested shape, trilinearly
// interpolating the source at each output node.
func handleToUniform(args []string) {
	fs := flag.NewFlagSet("to-uniform", flag.ExitOnError)
	hdrPath := fs.String("hdr", "", "path to the source grid .hdr file (required)")
	bufPath := fs.String("buf", "", "path to the source grid .buf file (required)")
	outHdr := fs.String("out-hdr", "", "output .hdr path (required)")
	outBuf := fs.String("out-buf", "", "output .buf path (required)")
	nx := fs.Int("nx", 0, "output Nx (defaults to source Nx)")
	ny := fs.Int("ny", 0, "output Ny (defaults to source Ny)")
	nz := fs.Int("nz", 0, "output Nz (defaults to source Nz)")
	fs.Parse(args)

	if *hdrPath == "" || *bufPath == "" || *outHdr == "" || *outBuf == "" {
		fmt.Fprintln(os.Stderr, "Error: --hdr, --buf, --out-hdr and --out-buf flags are required")
		fs.Usage()
		os.Exit(1)
	}
	for _, p := range []string{*outHdr, *outBuf} {
		if err := security.ValidateExportPath(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	src, transform, err := loadGrid(appFS, *hdrPath, *bufPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load grid: %v\n", err)
		os.Exit(1)
	}

	if *nx == 1 || *ny == 1 || *nz == 1 {
		fmt.Fprintln(os.Stderr, "Error: --nx, --ny and --nz must be 0 (source size) or >= 2; a single-node axis has no spacing to resample onto")
		os.Exit(1)
	}

	outDesc := src.Desc
	outDesc.Cascading = false
	outDesc.MergeDepths = nil
	if *nx > 0 {
		outDesc.Dx *= float64(src.Desc.Nx-1) / float64(*nx-1)
		outDesc.Nx = *nx
	}
	if *ny > 0 {
		outDesc.Dy *= float64(src.Desc.Ny-1) / float64(*ny-1)
		outDesc.Ny = *ny
	}
	if *nz > 0 {
		outDesc.Dz *= float64(src.Desc.Nz-1) / float64(*nz-1)
		outDesc.Nz = *nz
	}

	out, err := gridcore.Allocate(outDesc, src.Title+".uniform")
	if err != nil {
		fmt.Fprintf(os.Stderr, "allocate output grid: %v\n", err)
		os.Exit(1)
	}

	for ix := 0; ix < outDesc.Nx; ix++ {
		x := outDesc.OrigX + float64(ix)*outDesc.Dx
		for iy := 0; iy < outDesc.Ny; iy++ {
			y := outDesc.OrigY + float64(iy)*outDesc.Dy
			for iz := 0; iz < outDesc.Nz; iz++ {
				z := outDesc.OrigZ + float64(iz)*outDesc.Dz
				v := src.InterpAt(x, y, z)
				if err := out.SetValueAt(ix, iy, iz, v); err != nil {
					fmt.Fprintf(os.Stderr, "set output value: %v\n", err)
					os.Exit(1)
				}
			}
		}
	}

	if err := saveGrid(appFS, out, transform, *outHdr, *outBuf); err != nil {
		fmt.Fprintf(os.Stderr, "write output grid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s, %s (%d x %d x %d)\n", *outHdr, *outBuf, outDesc.Nx, outDesc.Ny, outDesc.Nz)
}

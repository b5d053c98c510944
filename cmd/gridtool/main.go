package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/seismocore/internal/fsutil"
	"github.com/banshee-data/seismocore/internal/version"
)

// appFS is the filesystem every subcommand reads and writes through.
// Swapped for a fsutil.MemoryFileSystem in tests.
var appFS fsutil.FileSystem = fsutil.OSFileSystem{}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "header":
		handleHeader(args)
	case "png":
		handlePNG(args)
	case "html":
		handleHTML(args)
	case "to-uniform":
		handleToUniform(args)
	case "version":
		fmt.Printf("gridtool v%s (git SHA: %s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridtool - inspect and convert NonLinLoc-style grid files

Usage: gridtool <command> [options]

Commands:
  header      Dump a grid's .hdr geometry, transform and kind
  png         Render one depth slice of a grid's .buf to a PNG heatmap
  html        Render one depth slice of a grid's .buf to an interactive HTML scatter plot
  to-uniform  Resample a grid (uniform or cascading) onto a uniform grid
  version     Show gridtool version
  help        Show this help message`)
}

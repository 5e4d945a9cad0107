// Command flow-plot renders a flow file to PNG: a magnitude heatmap, a
// vector (quiver) plot, or both.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/flowscale/internal/flow"
	"github.com/banshee-data/flowscale/internal/render"
)

var (
	heatmapPath = flag.String("heatmap", "", "write a magnitude heatmap PNG to this path")
	quiverPath  = flag.String("quiver", "", "write a vector plot PNG to this path")
	stride      = flag.Int("stride", 8, "plot every Nth vector in the quiver plot")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: flow-plot [-heatmap out.png] [-quiver out.png] [-stride n] file\n")
		os.Exit(1)
	}
	if *heatmapPath == "" && *quiverPath == "" {
		fmt.Fprintf(os.Stderr, "nothing to do: pass -heatmap and/or -quiver\n")
		os.Exit(1)
	}

	f, err := flow.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *heatmapPath != "" {
		if err := render.Heatmap(f, *heatmapPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
		log.Printf("wrote %s", *heatmapPath)
	}
	if *quiverPath != "" {
		if err := render.Quiver(f, *quiverPath, *stride); err != nil {
			log.Fatalf("Error: %v", err)
		}
		log.Printf("wrote %s", *quiverPath)
	}
}

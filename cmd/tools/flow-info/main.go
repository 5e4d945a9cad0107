// Command flow-info prints the header and displacement statistics of one
// or more flow files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/flowscale/internal/flow"
)

var brief = flag.Bool("brief", false, "print header fields only, skip statistics")

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: flow-info [-brief] file [file ...]\n")
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		f, err := flow.ReadFile(path)
		if err != nil {
			log.Printf("Error: %v", err)
			exitCode = 1
			continue
		}

		fmt.Printf("%s: %dx%d %s\n", path, f.Width, f.Height, f.Format)
		if !*brief {
			fmt.Printf("  %s\n", flow.Summarize(f))
		}
	}
	os.Exit(exitCode)
}

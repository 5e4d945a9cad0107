// Command flow-viewer serves an interactive magnitude chart of a flow
// file on a local HTTP port. It is a debugging aid for eyeballing a field
// without exporting PNGs.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/flowscale/internal/flow"
)

var (
	listen    = flag.String("listen", "localhost:8089", "HTTP listen address")
	maxPoints = flag.Int("max-points", 8000, "downsample the field to at most this many chart points")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: flow-viewer [-listen addr] [-max-points n] file\n")
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := flow.ReadFile(path)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		serveMagnitudeChart(w, f, path)
	})

	log.Printf("serving %s (%dx%d %s) on http://%s/", path, f.Width, f.Height, f.Format, *listen)
	if err := http.ListenAndServe(*listen, nil); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// serveMagnitudeChart renders the field as a colored scatter, one point
// per (possibly strided) cell, with magnitude driving the color scale.
func serveMagnitudeChart(w http.ResponseWriter, f *flow.Field, title string) {
	cells := f.Width * f.Height

	// Downsample by row/column stride to stay within maxPoints.
	stride := 1
	if cells > *maxPoints {
		stride = int(math.Ceil(math.Sqrt(float64(cells) / float64(*maxPoints))))
	}

	data := make([]opts.ScatterData, 0, cells/(stride*stride)+1)
	maxMag := 0.0
	for y := 0; y < f.Height; y += stride {
		for x := 0; x < f.Width; x += stride {
			mag := math.Hypot(float64(f.U(x, y)), float64(f.V(x, y)))
			if mag > maxMag {
				maxMag = mag
			}
			// Flip y so the chart matches image orientation.
			data = append(data, opts.ScatterData{Value: []interface{}{x, f.Height - 1 - y, mag}})
		}
	}
	if maxMag == 0 {
		maxMag = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Flow Magnitude", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Flow Magnitude", Subtitle: fmt.Sprintf("%s %dx%d stride=%d", title, f.Width, f.Height, stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0.0, Max: float64(f.Width), Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0.0, Max: float64(f.Height), Name: "y"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxMag),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("magnitude", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

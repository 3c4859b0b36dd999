// Demo tool: hides a message in a synthetic host buffer and recovers it.
// The host stands in for sampled image data; decoding real images is out
// of scope for the library and for this demo.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/yyyoichi/stegano"
	"github.com/yyyoichi/stegano/heatmap"
)

func main() {
	message := flag.String("message", "Hi", "message to hide")
	engine := flag.String("engine", "pvd", "embedding engine: pvd or bitplane")
	width := flag.Int("width", 2, "bits per host byte (bitplane engine)")
	size := flag.Int("size", 4096, "synthetic host length in bytes")
	window := flag.Int("window", 8, "heatmap score window (pvd engine)")
	flag.Parse()

	host := buildHost(*size)
	secret := []byte(*message)

	switch *engine {
	case "bitplane":
		runBitplane(host, secret, *width)
	case "pvd":
		runPvd(host, secret, *window)
	default:
		log.Fatalf("unknown engine %q (want pvd or bitplane)", *engine)
	}
}

func runBitplane(host, secret []byte, width int) {
	if err := stegano.BitplaneEmbed(host, secret, stegano.WithWidth(width)); err != nil {
		log.Fatalf("embed: %v", err)
	}
	recovered, err := stegano.BitplaneExtract(host, stegano.WithWidth(width))
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	fmt.Printf("bitplane: hid %d bytes at width %d in a %d-byte host\n", len(secret), width, len(host))
	fmt.Printf("recovered: %q (of %d capacity bytes)\n", recovered[:len(secret)], len(recovered))
}

func runPvd(host, secret []byte, window int) {
	scores := heatmap.Scores(host, window)
	threshold := heatmap.SplitThreshold(scores)
	loc := stegano.HeatmapTraversal{Scores: scores, Threshold: threshold}

	eligible := 0
	for range loc.IterIndices(len(host)) {
		eligible++
	}
	fmt.Printf("pvd: %d of %d positions score >= %.2f\n", eligible, len(host), threshold)

	bits, err := stegano.PvdEmbed(host, secret, loc.IterIndices(len(host)))
	if err != nil {
		log.Fatalf("embed: %v", err)
	}
	recovered, err := stegano.PvdExtract(host, loc.IterIndices(len(host)))
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	fmt.Printf("embedded %d bits\n", bits)
	fmt.Printf("recovered: %q (of %d capacity bytes)\n", recovered[:len(secret)], len(recovered))
}

// buildHost fakes a sampled signal: mid-range values with enough texture
// for the heatmap to find busy regions.
func buildHost(n int) []byte {
	host := make([]byte, n)
	for i := range host {
		v := 128 + 40*math.Sin(float64(i)/3) + 16*math.Sin(float64(i)/17)
		host[i] = byte(v)
	}
	return host
}

// Command report prints summary statistics for a CSV price snapshot and
// renders its trend chart.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"BitcoinTracker/internal/calculator"
	"BitcoinTracker/internal/chart"
	"BitcoinTracker/internal/config"
	"BitcoinTracker/internal/store"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	snapshot := flag.String("snapshot", cfg.Report.SnapshotPath, "CSV snapshot to analyse")
	image := flag.String("image", cfg.Report.ImagePath, "output PNG path")
	flag.Parse()

	if err := run(os.Stdout, *snapshot, *image); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func run(w io.Writer, snapshotPath, imagePath string) error {
	samples, err := store.ReadSnapshotCSV(snapshotPath)
	if err != nil {
		return err
	}
	summary, err := calculator.Summarize(samples)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "--- BITCOIN DATA REPORT ---")
	fmt.Fprintf(w, "Total Data Points: %d\n", summary.Count)
	fmt.Fprintf(w, "Average Price: $%s\n", calculator.FormatUSD(summary.Mean))

	opts := chart.DefaultOptions()
	opts.Title = "Bitcoin Price Trend"
	if err := chart.Render(samples, imagePath, opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "Success! Chart written to %s\n", imagePath)
	return nil
}

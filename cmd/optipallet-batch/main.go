// optipallet-batch reads a sheet of pallet/box dimension requests and runs
// the layout engine once per row, so a planner can queue many
// configurations at once instead of invoking optipallet one at a time.
//
// Build:
//   go build -o optipallet-batch ./cmd/optipallet-batch
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/batch"
	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/Obstacleee/OptiPallet/internal/report"
)

func main() {
	var (
		inputPath    = flag.String("in", "", "CSV or XLSX file of dimension requests (required)")
		outDir       = flag.String("out", "", "directory to write per-request reports into; empty skips reports")
		workers      = flag.Int("workers", 4, "parallel search workers per request")
		baseTimeout  = flag.Duration("base-timeout", 10*time.Second, "time budget for each request's base layer search")
		upperTimeout = flag.Duration("upper-timeout", 5*time.Second, "time budget per upper-layer search attempt")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -in flag")
		os.Exit(1)
	}

	var requests []batch.Request
	var warnings []string
	var err error
	if strings.HasSuffix(strings.ToLower(*inputPath), ".csv") {
		requests, warnings, err = batch.ReadCSV(*inputPath)
	} else {
		requests, warnings, err = batch.ReadExcel(*inputPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *inputPath, err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	settings := model.EngineSettings{
		NumSolutions:      1,
		Workers:           *workers,
		BaseTimeLimit:     *baseTimeout,
		UpperTimeLimit:    *upperTimeout,
		AttemptMultiplier: model.DefaultSettings().AttemptMultiplier,
	}

	results := batch.Run(requests, settings)
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "request %d failed: %v\n", i+1, r.Err)
			continue
		}
		fmt.Printf("request %d: %d templates found in %.2fs\n", i+1, r.Bundle.GenerationInfo.NumSolutionsFound, r.Bundle.GenerationInfo.DurationSeconds)

		if *outDir == "" || len(r.Bundle.Templates) == 0 {
			continue
		}
		reqDir := filepath.Join(*outDir, fmt.Sprintf("request_%02d", i+1))
		if err := os.MkdirAll(reqDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "request %d: failed to create output directory: %v\n", i+1, err)
			continue
		}
		if err := report.ExportWorkbook(filepath.Join(reqDir, "summary.xlsx"), r.Bundle); err != nil {
			fmt.Fprintf(os.Stderr, "request %d: workbook export failed: %v\n", i+1, err)
		}
	}
}

// OptiPallet — palletization template generator.
//
// Computes non-overlapping box layouts for a pallet, across a base and an
// upper layer, and ranks them by a physical-stability score.
//
// Build:
//   go build -o optipallet ./cmd/optipallet
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/engine"
	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/Obstacleee/OptiPallet/internal/report"
	"github.com/Obstacleee/OptiPallet/internal/store"
)

func main() {
	var (
		palletL      = flag.Int("pallet-l", 1200, "pallet length (mm)")
		palletW      = flag.Int("pallet-w", 1000, "pallet width (mm)")
		boxL         = flag.Int("box-l", 300, "box length (mm)")
		boxW         = flag.Int("box-w", 200, "box width (mm)")
		boxH         = flag.Int("box-h", 150, "box height (mm)")
		numSolutions = flag.Int("num-solutions", 5, "number of distinct templates to find")
		workers      = flag.Int("workers", 4, "parallel search workers")
		baseTimeout  = flag.Duration("base-timeout", 10*time.Second, "time budget for the base layer search")
		upperTimeout = flag.Duration("upper-timeout", 5*time.Second, "time budget per upper-layer search attempt")
		seed         = flag.Int64("seed", 0, "search seed; 0 picks one from the clock")
		outDir       = flag.String("out", "", "directory to write PDF/DXF/workbook reports into; empty skips reports")
		cacheDir     = flag.String("cache-dir", "", "fallback JSON cache directory; empty skips caching")
		jsonOut      = flag.Bool("json", false, "print the resulting bundle as JSON to stdout")
	)
	flag.Parse()

	pallet := model.Pallet{L: *palletL, W: *palletW}
	box := model.BoxDims{L: *boxL, W: *boxW, H: *boxH}
	settings := model.EngineSettings{
		NumSolutions:      *numSolutions,
		Workers:           *workers,
		BaseTimeLimit:     *baseTimeout,
		UpperTimeLimit:    *upperTimeout,
		AttemptMultiplier: model.DefaultSettings().AttemptMultiplier,
		Seed:              *seed,
	}

	var cache *store.FileCacheStore
	var key store.Key
	if *cacheDir != "" {
		cache = store.NewFileCacheStore(*cacheDir)
		key = store.KeyOf(pallet, box)
		if cached, found, err := cache.Load(key); err != nil {
			fmt.Fprintf(os.Stderr, "cache load failed, generating fresh: %v\n", err)
		} else if found {
			emit(cached, *outDir, *jsonOut)
			return
		}
	}

	bundle, err := engine.Generate(pallet, box, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if cache != nil {
		if err := cache.Save(key, bundle); err != nil {
			fmt.Fprintf(os.Stderr, "cache save failed: %v\n", err)
		}
	}

	emit(bundle, *outDir, *jsonOut)
}

func emit(bundle model.Bundle, outDir string, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal bundle: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("found %d templates in %.2fs\n", bundle.GenerationInfo.NumSolutionsFound, bundle.GenerationInfo.DurationSeconds)
	}

	if outDir == "" || len(bundle.Templates) == 0 {
		return
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return
	}
	if err := report.ExportPDF(outDir+"/layout.pdf", bundle); err != nil {
		fmt.Fprintf(os.Stderr, "PDF export failed: %v\n", err)
	}
	if err := report.ExportTraceCards(outDir+"/trace_cards.pdf", bundle); err != nil {
		fmt.Fprintf(os.Stderr, "trace card export failed: %v\n", err)
	}
	if err := report.ExportWorkbook(outDir+"/summary.xlsx", bundle); err != nil {
		fmt.Fprintf(os.Stderr, "workbook export failed: %v\n", err)
	}
	if err := report.ExportDXF(outDir+"/layout.dxf", bundle.PalletDimensions, bundle.Templates[0]); err != nil {
		fmt.Fprintf(os.Stderr, "DXF export failed: %v\n", err)
	}
}

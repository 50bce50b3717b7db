// Package batch reads many pallet/box dimension requests from a CSV or
// Excel sheet and drives the layout engine once per request, so a planner
// can queue an afternoon's worth of configurations instead of running them
// one at a time through a CLI.
package batch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Obstacleee/OptiPallet/internal/engine"
	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/xuri/excelize/v2"
)

// Request is one row's worth of generation parameters.
type Request struct {
	Pallet       model.Pallet
	Box          model.BoxDims
	NumSolutions int
}

// Result pairs a request with the bundle Generate produced for it, or the
// error that stopped it.
type Result struct {
	Request Request
	Bundle  model.Bundle
	Err     error
}

// columnMapping maps semantic roles to column indices in a parsed sheet.
type columnMapping struct {
	PalletL      int
	PalletW      int
	BoxL         int
	BoxW         int
	BoxH         int
	NumSolutions int
}

// headerAliases maps canonical column roles to their accepted header
// spellings (all lowercase, matched after trimming).
var headerAliases = map[string][]string{
	"pallet_l":      {"pallet_l", "pallet l", "l", "pallet length"},
	"pallet_w":      {"pallet_w", "pallet w", "w", "pallet width"},
	"box_l":         {"box_l", "box l", "l_box", "box length"},
	"box_w":         {"box_w", "box w", "w_box", "box width"},
	"box_h":         {"box_h", "box h", "h_box", "box height"},
	"num_solutions": {"num_solutions", "solutions", "count", "qty"},
}

// DetectCSVDelimiter picks the delimiter that produces the most consistent
// column count across rows, trying comma, semicolon, tab, and pipe.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// detectColumns examines a header row and returns a columnMapping, or a
// default positional mapping (pallet_l, pallet_w, box_l, box_w, box_h,
// num_solutions in that order) if no recognized header is found.
func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{PalletL: -1, PalletW: -1, BoxL: -1, BoxW: -1, BoxH: -1, NumSolutions: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "pallet_l":
					if mapping.PalletL == -1 {
						mapping.PalletL = i
					}
				case "pallet_w":
					if mapping.PalletW == -1 {
						mapping.PalletW = i
					}
				case "box_l":
					if mapping.BoxL == -1 {
						mapping.BoxL = i
					}
				case "box_w":
					if mapping.BoxW == -1 {
						mapping.BoxW = i
					}
				case "box_h":
					if mapping.BoxH == -1 {
						mapping.BoxH = i
					}
				case "num_solutions":
					if mapping.NumSolutions == -1 {
						mapping.NumSolutions = i
					}
				}
			}
		}
	}

	if !isHeader {
		return columnMapping{PalletL: 0, PalletW: 1, BoxL: 2, BoxW: 3, BoxH: 4, NumSolutions: 5}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, mapping columnMapping, rowLabel string) (Request, error) {
	fields := []struct {
		name string
		idx  int
	}{
		{"pallet L", mapping.PalletL},
		{"pallet W", mapping.PalletW},
		{"box l", mapping.BoxL},
		{"box w", mapping.BoxW},
		{"box h", mapping.BoxH},
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		raw := getCell(row, f.idx)
		if raw == "" {
			return Request{}, fmt.Errorf("%s: missing %s value", rowLabel, f.name)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, fmt.Errorf("%s: invalid %s value %q", rowLabel, f.name, raw)
		}
		values[i] = v
	}

	numSolutions := 1
	if raw := getCell(row, mapping.NumSolutions); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, fmt.Errorf("%s: invalid num_solutions value %q", rowLabel, raw)
		}
		numSolutions = v
	}

	return Request{
		Pallet:       model.Pallet{L: values[0], W: values[1]},
		Box:          model.BoxDims{L: values[2], W: values[3], H: values[4]},
		NumSolutions: numSolutions,
	}, nil
}

func requestsFromRows(rows [][]string, rowPrefix string) ([]Request, []string, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows found")
	}

	mapping, hasHeader := detectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		missing := []string{}
		if mapping.PalletL == -1 || mapping.PalletW == -1 {
			missing = append(missing, "pallet dimensions")
		}
		if mapping.BoxL == -1 || mapping.BoxW == -1 || mapping.BoxH == -1 {
			missing = append(missing, "box dimensions")
		}
		if len(missing) > 0 {
			return nil, nil, fmt.Errorf("required columns not found in header: %s", strings.Join(missing, ", "))
		}
	}

	var requests []Request
	var warnings []string
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		req, err := parseRow(row, mapping, rowLabel)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		requests = append(requests, req)
	}
	return requests, warnings, nil
}

// ReadCSV parses dimension requests from a CSV file, auto-detecting the
// delimiter and the column layout.
func ReadCSV(path string) ([]Request, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	delimiter := DetectCSVDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	return requestsFromRows(records, "Line")
}

// ReadExcel parses dimension requests from the first sheet of an Excel
// workbook.
func ReadExcel(path string) ([]Request, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read workbook data: %w", err)
	}
	return requestsFromRows(rows, "Row")
}

// Run drives engine.Generate once per request, in order, and returns one
// Result per request. It does not stop on a per-request error; Result.Err
// carries it forward so the caller can report partial progress.
func Run(requests []Request, settings model.EngineSettings) []Result {
	results := make([]Result, len(requests))
	for i, req := range requests {
		s := settings
		if req.NumSolutions > 0 {
			s.NumSolutions = req.NumSolutions
		}
		bundle, err := engine.Generate(req.Pallet, req.Box, s)
		results[i] = Result{Request: req, Bundle: bundle, Err: err}
	}
	return results
}

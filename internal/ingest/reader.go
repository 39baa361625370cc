package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// ErrNotCSV is returned when an upload does not carry a .csv extension.
var ErrNotCSV = errors.New("not a CSV file")

// ReadRows parses CSV content into one map per data row, keyed by the
// header row. Ragged rows are tolerated: missing trailing cells resolve to
// "" and extra cells are dropped, matching the lenient parsing the
// uploaded exports need.
func ReadRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if isBlank(fields) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses a CSV file from disk, rejecting non-.csv extensions.
func ReadFile(path string) ([]map[string]string, error) {
	if !IsCSVPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotCSV, filepath.Base(path))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return ReadRows(file)
}

// ReadFileWithProgress parses a CSV file while rendering a progress bar,
// for interactive CLI ingestion of large exports.
func ReadFileWithProgress(path string, out io.Writer) ([]map[string]string, error) {
	if !IsCSVPath(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotCSV, filepath.Base(path))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	bar := progressbar.NewOptions64(
		info.Size(),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(fmt.Sprintf("ingesting %s", filepath.Base(path))),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	rows, err := ReadRows(io.TeeReader(file, bar))
	_ = bar.Finish()
	return rows, err
}

// IsCSVPath reports whether the file name carries a .csv extension.
func IsCSVPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

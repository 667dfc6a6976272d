package capture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
)

var (
	ErrNoSamples = errors.New("no samples")
	ErrCSVShape  = errors.New("inconsistent column count")
)

// ReadCSV reads intensities from comma separated rows. With one column the
// rows are intensities and x is nil; with two or more the first two columns
// are wavelength and intensity. A first row without any numeric field is taken
// as a header and lines starting with '#' are comments.
func ReadCSV(r io.Reader) (x, y []float64, err error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cols := 0
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		vals, err := parseRecord(rec)
		if err != nil {
			if row == 0 && isHeader(rec) {
				continue
			}
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		switch {
		case cols == 0:
			cols = min(len(vals), 2)
		case min(len(vals), 2) != cols:
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w", line, ErrCSVShape)
		}
		if cols == 1 {
			y = append(y, vals[0])
		} else {
			x = append(x, vals[0])
			y = append(y, vals[1])
		}
	}
	if len(y) == 0 {
		return nil, nil, ErrNoSamples
	}
	return x, y, nil
}

// isHeader reports whether no field of rec parses as a number.
func isHeader(rec []string) bool {
	for _, f := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return false
		}
	}
	return true
}

func parseRecord(rec []string) ([]float64, error) {
	out := make([]float64, 0, len(rec))
	for _, f := range rec {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	return out, nil
}

// LoadCSV maps path into memory and reads it with ReadCSV.
func LoadCSV(path string) (x, y []float64, err error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	x, y, err = ReadCSV(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, y, nil
}

// Package libsvm reads the libsvm sparse line format the direct-ingest
// build path consumes: one document per line, a label followed by
// 1-based "feature:weight" pairs.
package libsvm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Feature is one (feature id, weight) pair, already converted from the
// wire's 1-based id to a 0-based id.
type Feature struct {
	ID     uint64
	Weight float64
}

// Line is one parsed document.
type Line struct {
	Label    float64
	Features []Feature
}

// Reader iterates Lines out of an underlying libsvm-formatted stream.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// Next returns the next parsed line. ok is false at a clean end of
// input; blank lines are skipped.
func (r *Reader) Next() (Line, bool, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" {
			continue
		}
		ln, err := parseLine(text)
		if err != nil {
			return Line{}, false, fmt.Errorf("libsvm: line %d: %w", r.line, err)
		}
		return ln, true, nil
	}
	if err := r.sc.Err(); err != nil {
		return Line{}, false, fmt.Errorf("libsvm: scan: %w", err)
	}
	return Line{}, false, nil
}

func parseLine(text string) (Line, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("empty line")
	}
	label, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Line{}, fmt.Errorf("label %q: %w", fields[0], err)
	}

	features := make([]Feature, 0, len(fields)-1)
	for _, tok := range fields[1:] {
		idStr, wStr, ok := strings.Cut(tok, ":")
		if !ok {
			return Line{}, fmt.Errorf("malformed feature token %q", tok)
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return Line{}, fmt.Errorf("feature id %q: %w", idStr, err)
		}
		if id == 0 {
			return Line{}, fmt.Errorf("feature id must be 1-based, got 0")
		}
		weight, err := strconv.ParseFloat(wStr, 64)
		if err != nil {
			return Line{}, fmt.Errorf("feature weight %q: %w", wStr, err)
		}
		features = append(features, Feature{ID: id - 1, Weight: weight})
	}
	return Line{Label: label, Features: features}, nil
}

// ReadAll drains r, returning every line and the total unique term
// count implied by the maximum observed feature id plus one.
func ReadAll(r io.Reader) ([]Line, uint64, error) {
	reader := NewReader(r)
	var lines []Line
	var maxID uint64
	seen := false
	for {
		ln, ok, err := reader.Next()
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			break
		}
		lines = append(lines, ln)
		for _, f := range ln.Features {
			if !seen || f.ID > maxID {
				maxID = f.ID
				seen = true
			}
		}
	}
	if !seen {
		return lines, 0, nil
	}
	return lines, maxID + 1, nil
}

package status

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineTerminator ends every record written by Serialize.
const LineTerminator = "\r\n"

// ShapePolicy decides what Parse does with a data row whose width differs
// from the header.
type ShapePolicy int

const (
	// ShapeReject fails the parse with a SchemaMismatchError.
	ShapeReject ShapePolicy = iota
	// ShapePad fills missing trailing cells with "". Rows wider than the
	// header are still rejected.
	ShapePad
)

func (s ShapePolicy) String() string {
	if s == ShapePad {
		return "pad"
	}
	return "reject"
}

// ParseShape maps a config value ("", "reject", "pad") to a ShapePolicy.
func ParseShape(s string) (ShapePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return ShapeReject, nil
	case "pad":
		return ShapePad, nil
	}
	return ShapeReject, fmt.Errorf("%w %q", ErrUnknownShape, s)
}

// Parse reads text with the header on the first line, rejecting rows whose
// width differs from the header.
func Parse(text string) (*Document, error) {
	return ParseWith(text, ShapeReject)
}

// ParseWith reads text applying shape to mismatched rows.
func ParseWith(text string, shape ShapePolicy) (*Document, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		if len(rec) < len(header) && shape == ShapePad {
			rec = append(rec, make([]string, len(header)-len(rec))...)
		}
		if len(rec) != len(header) {
			line, _ := r.FieldPos(0)
			return nil, &SchemaMismatchError{Line: line, Want: len(header), Got: len(rec)}
		}
		rows = append(rows, rec)
	}
	return NewDocument(header, rows)
}

// Serialize writes the header and rows with RFC 4180 quoting, each record
// terminated by LineTerminator. Cells keep embedded newlines as-is.
func Serialize(d *Document) string {
	var (
		out  strings.Builder
		line bytes.Buffer
	)
	w := csv.NewWriter(&line)
	emit := func(rec []string) {
		// a lone empty cell would otherwise read back as a skipped blank line
		if len(rec) == 1 && rec[0] == "" {
			out.WriteString(`""` + LineTerminator)
			return
		}
		line.Reset()
		_ = w.Write(rec)
		w.Flush()
		b := line.Bytes()
		out.Write(b[:len(b)-1])
		out.WriteString(LineTerminator)
	}
	emit(d.Schema)
	for _, r := range d.Rows {
		emit(r)
	}
	return out.String()
}

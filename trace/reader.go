package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader parses accesses from a trace stream and validates them as it
// goes. Rows must carry non-decreasing cycle numbers and positive sizes.
type Reader struct {
	csv       *csv.Reader
	row       int
	lastCycle uint64
}

// NewReader creates a Reader that parses the trace in r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	return &Reader{csv: cr}
}

// Next returns the next access. It returns io.EOF after the last one.
func (r *Reader) Next() (Access, error) {
	record, err := r.csv.Read()
	if err != nil {
		return Access{}, err
	}
	r.row++

	if r.row == 1 && strings.TrimSpace(record[0]) == "cycle" {
		return r.Next()
	}

	access, err := parseRecord(record)
	if err != nil {
		return Access{}, fmt.Errorf("trace row %d: %w", r.row, err)
	}

	if access.Cycle < r.lastCycle {
		return Access{}, fmt.Errorf(
			"trace row %d: cycle %d goes backward, previous was %d",
			r.row, access.Cycle, r.lastCycle)
	}
	r.lastCycle = access.Cycle

	return access, nil
}

// ReadAll returns every access in r. It is a convenience for small traces;
// large traces should be streamed with Next.
func ReadAll(r io.Reader) ([]Access, error) {
	reader := NewReader(r)

	var accesses []Access
	for {
		access, err := reader.Next()
		if err == io.EOF {
			return accesses, nil
		}
		if err != nil {
			return nil, err
		}

		accesses = append(accesses, access)
	}
}

func parseRecord(record []string) (Access, error) {
	cycle, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return Access{}, fmt.Errorf("bad cycle %q", record[0])
	}

	var isWrite bool
	switch strings.TrimSpace(record[1]) {
	case "R", "r":
		isWrite = false
	case "W", "w":
		isWrite = true
	default:
		return Access{}, fmt.Errorf("bad op %q, want R or W", record[1])
	}

	addr, err := parseAddr(record[2])
	if err != nil {
		return Access{}, fmt.Errorf("bad address %q", record[2])
	}

	size, err := strconv.ParseUint(strings.TrimSpace(record[3]), 10, 32)
	if err != nil || size == 0 {
		return Access{}, fmt.Errorf("bad size %q, want a positive integer",
			record[3])
	}

	return Access{
		Cycle:   cycle,
		IsWrite: isWrite,
		Addr:    addr,
		Size:    uint32(size),
	}, nil
}

func parseAddr(s string) (uint64, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}

	return strconv.ParseUint(s, 10, 64)
}

package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tebeka/atexit"
)

// A Writer stores accesses into a CSV trace file. Accesses are buffered and
// written in batches. The file is flushed and closed at exit.
type Writer struct {
	path string
	file *os.File
	csv  *csv.Writer

	accesses   []Access
	bufferSize int
}

// NewWriter creates a Writer that stores a trace at path.
func NewWriter(path string) *Writer {
	return &Writer{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the trace file and writes the header row. If the file already
// exists, it will be overwritten.
func (w *Writer) Init() {
	file, err := os.Create(w.path)
	if err != nil {
		panic(err)
	}
	w.file = file
	w.csv = csv.NewWriter(file)

	err = w.csv.Write([]string{"cycle", "op", "addr", "size"})
	if err != nil {
		panic(err)
	}

	atexit.Register(func() {
		w.Flush()
		err := w.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Write buffers one access for output.
func (w *Writer) Write(access Access) {
	w.accesses = append(w.accesses, access)
	if len(w.accesses) >= w.bufferSize {
		w.Flush()
	}
}

// Flush drains the buffer to the file.
func (w *Writer) Flush() {
	for _, access := range w.accesses {
		op := "R"
		if access.IsWrite {
			op = "W"
		}

		err := w.csv.Write([]string{
			strconv.FormatUint(access.Cycle, 10),
			op,
			fmt.Sprintf("0x%x", access.Addr),
			strconv.FormatUint(uint64(access.Size), 10),
		})
		if err != nil {
			panic(err)
		}
	}

	w.accesses = w.accesses[:0]

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		panic(err)
	}
}

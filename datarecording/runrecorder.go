package datarecording

import (
	"os"
	"strings"
	"time"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

// A RunRecorder stores descriptive properties of one simulation run, such as
// the command line and the parameters in effect.
type RunRecorder struct {
	recorder DataRecorder
	entries  []RunProperty
}

// NewRunRecorder creates a RunRecorder that stores into recorder, creating
// the table it writes to.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunInfoTable, RunProperty{})

	return &RunRecorder{recorder: recorder}
}

// Start logs the start time, the command line, and the working directory.
func (r *RunRecorder) Start() {
	startTime := time.Now().Format(timeFormat)
	r.entries = append(r.entries, RunProperty{"Start Time", startTime})

	cmd := strings.Join(os.Args, " ")
	r.entries = append(r.entries, RunProperty{"Command", cmd})

	wd, err := os.Getwd()
	if err == nil {
		r.entries = append(r.entries, RunProperty{"Working Directory", wd})
	}
}

// AddProperty logs one property of the run, such as a parameter value.
func (r *RunRecorder) AddProperty(property, value string) {
	r.entries = append(r.entries, RunProperty{property, value})
}

// End writes all buffered properties along with the end time, then flushes
// the recorder.
func (r *RunRecorder) End() {
	for _, entry := range r.entries {
		r.recorder.InsertData(RunInfoTable, entry)
	}
	r.entries = nil

	endTime := time.Now().Format(timeFormat)
	r.recorder.InsertData(RunInfoTable, RunProperty{"End Time", endTime})

	r.recorder.Flush()
}

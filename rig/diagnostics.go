// Package rig implements the rig-def text format: a tokenizing,
// section-dispatching parser that turns a line-oriented vehicle
// description into structured per-section records ready for the
// builder package to wire into a Rig.
package rig

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic by how the parser or builder reacted
// to the condition that produced it.
type Severity int

const (
	INFO Severity = iota
	WARNING
	ERROR
	INTERNAL_ERROR
)

func (s Severity) String() string {
	switch s {
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case INTERNAL_ERROR:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one entry in the ordered diagnostics stream the parser
// and builder produce alongside their structured output (spec §4.6).
type Diagnostic struct {
	Severity   Severity
	Line       int
	Section    string
	Subsection string
	Module     string
	Message    string
}

func (d Diagnostic) String() string {
	loc := d.Section
	if d.Subsection != "" {
		loc = loc + "/" + d.Subsection
	}
	return fmt.Sprintf("%s:%d [%s/%s] %s", d.Severity, d.Line, d.Module, loc, d.Message)
}

// Diagnostics is the ordered list handed back to the caller alongside
// a (possibly partial) parse result or Rig (spec §4.6, §7).
type Diagnostics []Diagnostic

// Add appends a new diagnostic, mirroring the teacher's pattern of
// aggregating small independent checks into one report (qa.go's QInfo).
func (d *Diagnostics) Add(sev Severity, line int, module, section, subsection, msg string) {
	*d = append(*d, Diagnostic{
		Severity:   sev,
		Line:       line,
		Section:    section,
		Subsection: subsection,
		Module:     module,
		Message:    msg,
	})
}

// HasErrors reports whether any diagnostic at ERROR or INTERNAL_ERROR
// severity was recorded.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity >= ERROR {
			return true
		}
	}
	return false
}

// Filter returns the subset of diagnostics at or above the given
// severity.
func (d Diagnostics) Filter(min Severity) Diagnostics {
	out := make(Diagnostics, 0, len(d))
	for _, diag := range d {
		if diag.Severity >= min {
			out = append(out, diag)
		}
	}
	return out
}

func (d Diagnostics) String() string {
	lines := make([]string, len(d))
	for i, diag := range d {
		lines[i] = diag.String()
	}
	return strings.Join(lines, "\n")
}

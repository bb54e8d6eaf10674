package rig

import "strings"

// OptionSet is a bitset of single-letter flags, shared by every section
// that carries an options string (spec §4.3 parse_options).
type OptionSet map[byte]bool

// ParseOptions scans a string of single-letter flags against the given
// alphabet; unknown letters emit a WARNING and are otherwise ignored
// (spec §4.3).
func ParseOptions(s string, alphabet string, line int, module, section string, diags *Diagnostics) OptionSet {
	opts := make(OptionSet)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ',' || c == ' ' || c == '\t' {
			continue
		}
		if strings.IndexByte(alphabet, c) < 0 {
			diags.Add(WARNING, line, module, section, "", "unknown option flag '"+string(c)+"', ignored")
			continue
		}
		opts[c] = true
	}
	return opts
}

func (o OptionSet) Has(c byte) bool { return o != nil && o[c] }

// InertiaTail is the optional trailing 4-tuple many sections accept:
// (start_delay, stop_delay, start_function, stop_function). Each field
// is itself optional; "/" or "-" means "use previous" (spec §4.3
// parse_inertia_tail).
type InertiaTail struct {
	StartDelay   float64
	StopDelay    float64
	StartFn      string
	StopFn       string
	HasStartDel  bool
	HasStopDel   bool
	HasStartFn   bool
	HasStopFn    bool
}

// ParseInertiaTail parses up to four whitespace/comma separated tokens
// trailing a section's own fields. A missing token, or the placeholders
// "/" and "-", both mean "use previous" and leave the corresponding
// Has* flag false.
func ParseInertiaTail(toks []string, line int, module, section string, diags *Diagnostics) InertiaTail {
	var tail InertiaTail
	get := func(i int) (string, bool) {
		if i >= len(toks) {
			return "", false
		}
		t := strings.TrimSpace(toks[i])
		if t == "" || t == "/" || t == "-" {
			return "", false
		}
		return t, true
	}

	if s, ok := get(0); ok {
		if v, perr := parseFloatLoose(s); perr == nil {
			tail.StartDelay, tail.HasStartDel = v, true
		} else {
			diags.Add(WARNING, line, module, section, "", "malformed start_delay \""+s+"\"")
		}
	}
	if s, ok := get(1); ok {
		if v, perr := parseFloatLoose(s); perr == nil {
			tail.StopDelay, tail.HasStopDel = v, true
		} else {
			diags.Add(WARNING, line, module, section, "", "malformed stop_delay \""+s+"\"")
		}
	}
	if s, ok := get(2); ok {
		tail.StartFn, tail.HasStartFn = s, true
	}
	if s, ok := get(3); ok {
		tail.StopFn, tail.HasStopFn = s, true
	}
	return tail
}

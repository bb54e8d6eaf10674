package rig

import "strings"

// LineIterator is the only input the core accepts (spec §1: "the core
// accepts a line iterator"); locating and reading the raw bytes is an
// external collaborator's job. Next returns false once exhausted.
type LineIterator interface {
	Next() (line string, ok bool)
}

// SliceLineIterator adapts an in-memory slice of lines to LineIterator,
// the shape tests and small callers use most often.
type SliceLineIterator struct {
	Lines []string
	pos   int
}

func NewSliceLineIterator(lines []string) *SliceLineIterator {
	return &SliceLineIterator{Lines: lines}
}

func (s *SliceLineIterator) Next() (string, bool) {
	if s.pos >= len(s.Lines) {
		return "", false
	}
	line := s.Lines[s.pos]
	s.pos++
	return line, true
}

// EventKind tags one classified line (spec §4.1).
type EventKind int

const (
	EvBlockCommentBegin EventKind = iota
	EvBlockCommentEnd
	EvDescription
	EvSectionKeyword
	EvInlineDirective
	EvSectionBody
	EvBlank
	EvIgnored
)

// Event is one classified line, ready for the section dispatcher.
type Event struct {
	Kind EventKind
	Line int
	Text string
	Raw  string
}

// scannerState is the block-comment/description mode the classifier
// tracks across lines (spec §4.1).
type scannerState int

const (
	stateNormal scannerState = iota
	stateBlockComment
	stateDescription
)

// Scanner is the line-oriented classifier (spec §4.1). It never fails;
// an unrecognised line becomes EvIgnored with a WARNING diagnostic.
type Scanner struct {
	iter        LineIterator
	state       scannerState
	lineNo      int
	blankLines  int
	kw          *KeywordTable
}

func NewScanner(iter LineIterator, kw *KeywordTable) *Scanner {
	return &Scanner{iter: iter, kw: kw}
}

// BlankLineCount is exposed as a diagnostic, never semantic (spec §4.1).
func (s *Scanner) BlankLineCount() int { return s.blankLines }

func isCommentLine(t string) bool {
	return strings.HasPrefix(t, ";") || strings.HasPrefix(strings.TrimLeft(t, " \t"), "//")
}

// Next classifies the next line, or returns ok=false at EOF.
func (s *Scanner) Next(diags *Diagnostics) (Event, bool) {
	raw, ok := s.iter.Next()
	if !ok {
		return Event{}, false
	}
	s.lineNo++
	trimmed := strings.TrimSpace(raw)

	switch s.state {
	case stateBlockComment:
		if matchKeyword(trimmed, "end_comment") {
			s.state = stateNormal
			return Event{Kind: EvBlockCommentEnd, Line: s.lineNo, Raw: raw}, true
		}
		return Event{Kind: EvIgnored, Line: s.lineNo, Raw: raw}, true

	case stateDescription:
		if matchKeyword(trimmed, "end_description") {
			s.state = stateNormal
			return Event{Kind: EvSectionKeyword, Line: s.lineNo, Text: "end_description", Raw: raw}, true
		}
		return Event{Kind: EvDescription, Line: s.lineNo, Text: raw, Raw: raw}, true
	}

	if trimmed == "" {
		s.blankLines++
		return Event{Kind: EvBlank, Line: s.lineNo, Raw: raw}, true
	}
	if isCommentLine(trimmed) {
		return Event{Kind: EvIgnored, Line: s.lineNo, Raw: raw}, true
	}
	if matchKeyword(trimmed, "comment") {
		s.state = stateBlockComment
		return Event{Kind: EvBlockCommentBegin, Line: s.lineNo, Raw: raw}, true
	}
	if matchKeyword(trimmed, "description") {
		s.state = stateDescription
		return Event{Kind: EvSectionKeyword, Line: s.lineNo, Text: "description", Raw: raw}, true
	}

	kind, rest, found := s.kw.Classify(trimmed)
	if !found {
		diags.Add(WARNING, s.lineNo, "", "", "", "unrecognised line, ignored: \""+raw+"\"")
		return Event{Kind: EvIgnored, Line: s.lineNo, Raw: raw}, true
	}
	if kind.IsSection {
		return Event{Kind: EvSectionKeyword, Line: s.lineNo, Text: kind.Name, Raw: raw}, true
	}
	if kind.IsDirective {
		return Event{Kind: EvInlineDirective, Line: s.lineNo, Text: rest, Raw: raw}, true
	}
	return Event{Kind: EvSectionBody, Line: s.lineNo, Text: trimmed, Raw: raw}, true
}

func matchKeyword(trimmed, kw string) bool {
	if trimmed == kw {
		return true
	}
	if strings.HasPrefix(trimmed, kw) {
		rest := trimmed[len(kw):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return true
		}
	}
	return false
}

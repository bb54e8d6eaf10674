package rig

import (
	"strconv"
	"strings"
)

// NodeId is a parsed node reference: either a decimal number or a name,
// in separate namespaces (spec §3 Node invariant, §4.3.1).
type NodeId struct {
	IsNumbered bool
	Num        int
	Name       string
}

func (n NodeId) String() string {
	if n.IsNumbered {
		return strconv.Itoa(n.Num)
	}
	return n.Name
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameTail(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-'
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseNodeId parses a single node-id token (spec §6, §4.3 parse_node_id).
// A decimal number becomes a numeric id; a negative number is warned and
// flipped positive for back-compat with the legacy parser. Anything else
// is treated as a name.
func ParseNodeId(s string, line int, module, section string, diags *Diagnostics) NodeId {
	s = strings.TrimSpace(s)
	if looksNumeric(s) {
		v, err := strconv.Atoi(s)
		if err != nil {
			diags.Add(WARNING, line, module, section, "", "malformed numeric node id \""+s+"\", treated as name")
			return NodeId{IsNumbered: false, Name: s}
		}
		if v < 0 {
			diags.Add(WARNING, line, module, section, "", "negative node id, flipped to positive for back-compat")
			v = -v
		}
		return NodeId{IsNumbered: true, Num: v}
	}
	return NodeId{IsNumbered: false, Name: s}
}

// ParseNodeIdOptional accepts the literal "-1" as "absent" (spec §4.3
// parse_node_id_optional), used for optional axis/arm/rigidity slots.
func ParseNodeIdOptional(s string, line int, module, section string, diags *Diagnostics) (NodeId, bool) {
	s = strings.TrimSpace(s)
	if s == "-1" {
		return NodeId{}, false
	}
	return ParseNodeId(s, line, module, section, diags), true
}

// NodeRange is an inclusive range of node ids, expanded by the builder
// during identifier resolution (spec §4.4 Range expansion).
type NodeRange struct {
	Start, End NodeId
	Single     bool
}

// ParseNodeRangeOrSingle parses a token that may be "A-B" or a single
// node id, used by forset lines and range-accepting sections.
func ParseNodeRangeOrSingle(tok string, line int, module, section string, diags *Diagnostics) NodeRange {
	tok = strings.TrimSpace(tok)
	if idx := strings.IndexByte(tok, '-'); idx > 0 {
		// Disambiguate from a negative numeric id: only split on '-' when
		// it is not the first character (names/numbers with a leading
		// '-' are handled by ParseNodeId, not here).
		left := tok[:idx]
		right := tok[idx+1:]
		if left != "" && right != "" {
			return NodeRange{
				Start: ParseNodeId(left, line, module, section, diags),
				End:   ParseNodeId(right, line, module, section, diags),
			}
		}
	}
	return NodeRange{Start: ParseNodeId(tok, line, module, section, diags), Single: true}
}

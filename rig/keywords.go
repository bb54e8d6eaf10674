package rig

import "strings"

// KeywordKind describes one entry of the ordered keyword table (spec
// §4.1, §6 "Keyword precedence").
type KeywordKind struct {
	Name        string
	IsSection   bool // opens a section whose body lines follow
	IsDirective bool // an inline directive, mutates defaults/module state immediately
}

// KeywordTable performs first-match-wins classification (spec §4.1,
// §6). The table is ordered; a longer, more specific keyword must
// precede a shorter prefix of itself (e.g. "nodes2" before "nodes") —
// callers must list the longest/most specific keywords first where a
// prefix relationship exists.
type KeywordTable struct {
	entries []KeywordKind
}

// sectionKeywords lists every section named by spec §2/§4.3/§C, in the
// order they are recognised. Longest-prefix-first ordering matters for
// a few pairs (meshwheels2 before meshwheels, wheels2 before wheels,
// rotators2 before rotators, shocks2 before shocks, commands2 before
// commands, soundsources2 before soundsources, end_* before their
// non-"end_" counterparts where one is a prefix of the other).
var sectionKeywords = []string{
	"end_section", "section",
	"end_description",
	"end_comment", "comment",
	"globals",
	"help",
	"nodes2", "nodes",
	"cinecam",
	"beams",
	"shocks2", "shocks",
	"commands2", "commands",
	"ties",
	"animators",
	"hydros",
	"wheels2", "meshwheels2", "meshwheels", "flexbodywheels", "wheels",
	"turbojets",
	"wings",
	"fusedrag",
	"contacters",
	"flares2",
	"videocameras",
	"cameras",
	"props",
	"add_animation",
	"engine",
	"engoption",
	"brakes",
	"TractionControl",
	"AntiLockBrakes",
	"SlopeBrake",
	"rotators2", "rotators",
	"triggers",
	"lockgroups",
	"hooks",
	"railgroups",
	"slidenodes",
	"ropes",
	"ropables",
	"particles",
	"torquecurve",
	"cruisecontrol",
	"speedlimiter",
	"axles",
	"collisionboxes",
	"materialflarebindings",
	"backmesh",
	"texcoords",
	"cab",
	"submesh",
	"exhausts",
	"guisettings",
	"extcamera",
	"camerarails",
	"airbrakes",
	"pistonprops",
	"turboprops2",
	"screwprops",
	"set_skeleton_settings",
	"flexbody_camera_mode",
	"forset",
	"flexbodies",
	"soundsources2", "soundsources",
	"managedmaterials",
	"fileinfo",
	"author",
	"minimass",
	"rescuer",
	"disabledefaultsounds",
	"enable_advanced_deformation",
	"slidenode_connect_instantly",
	"rollon",
	"forwardcommands",
	"importcommands",
	"lockgroup_default_nolock",
	"hideInChooser",
	"fileformatversion",
	"guid",
}

// directiveKeywords lists the ten inline directives (spec §2/§4.2)
// that mutate the defaults stack or module state.
var directiveKeywords = []string{
	"set_beam_defaults_scale",
	"set_beam_defaults",
	"set_node_defaults",
	"set_inertia_defaults",
	"set_managed_materials_options",
	"set_collision_range",
	"set_shadows",
	"set_default_minimass",
	"detacher_group",
	"submesh_groundmodel",
}

// NewStandardKeywordTable builds the table used by the production
// parser; the order here is the single source of truth for §6's
// "keyword precedence" rule.
func NewStandardKeywordTable() *KeywordTable {
	t := &KeywordTable{}
	for _, n := range sectionKeywords {
		t.entries = append(t.entries, KeywordKind{Name: n, IsSection: true})
	}
	for _, n := range directiveKeywords {
		t.entries = append(t.entries, KeywordKind{Name: n, IsDirective: true})
	}
	return t
}

// Classify returns the first matching keyword kind and the remainder of
// the line after the keyword and any separating whitespace/comma (spec
// §6: "matched against line prefix after whitespace trim; first match
// wins").
func (t *KeywordTable) Classify(trimmed string) (KeywordKind, string, bool) {
	for _, k := range t.entries {
		if matchKeyword(trimmed, k.Name) {
			rest := strings.TrimSpace(trimmed[len(k.Name):])
			rest = strings.TrimLeft(rest, ",")
			rest = strings.TrimSpace(rest)
			return k, rest, true
		}
	}
	return KeywordKind{}, "", false
}

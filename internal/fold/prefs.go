package fold

import "strings"

// Preferences are the folding options a host supplies.
type Preferences struct {
	CollapseImports        bool `toml:"collapse_imports_default"`
	CollapseInnerTypes     bool `toml:"collapse_inner_types_default"`
	CollapseJavadoc        bool `toml:"collapse_javadoc_default"`
	CollapseMembers        bool `toml:"collapse_members_default"`
	CollapseHeaderComments bool `toml:"collapse_header_comments_default"`
	CollapseCustomRegions  bool `toml:"collapse_custom_regions_default"`

	CustomRegionsEnabled bool   `toml:"custom_regions_enabled"`
	CustomRegionBegin    string `toml:"custom_region_begin_marker"`
	CustomRegionEnd      string `toml:"custom_region_end_marker"`

	// UseStructuralExtraction selects statement-level extraction. When false
	// only declarations (imports, types, members) and comments fold.
	UseStructuralExtraction bool `toml:"use_structural_extraction"`
}

// DefaultPreferences returns the built-in defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		CollapseImports:         true,
		CollapseHeaderComments:  true,
		CustomRegionsEnabled:    true,
		CustomRegionBegin:       "region",
		CustomRegionEnd:         "endregion",
		UseStructuralExtraction: true,
	}
}

// customRegions reports whether marker matching is active.
func (p Preferences) customRegions() bool {
	return p.CustomRegionsEnabled &&
		strings.TrimSpace(p.CustomRegionBegin) != "" &&
		strings.TrimSpace(p.CustomRegionEnd) != ""
}

// overlap reports whether one marker is a prefix of the other, in which case
// a single comment may close one region and open the next.
func (p Preferences) overlap() bool {
	b, e := strings.TrimSpace(p.CustomRegionBegin), strings.TrimSpace(p.CustomRegionEnd)
	return strings.HasPrefix(b, e) || strings.HasPrefix(e, b)
}

package domain

import (
	"fmt"
	"slices"
)

// TargetType selects which audience a banner is eligible for.
type TargetType string

const (
	TargetAll      TargetType = "all"
	TargetEnrolled TargetType = "enrolled"
	TargetCustom   TargetType = "custom"
)

// AudienceRule describes who should see a banner. The include/exclude lists
// are only consulted when TargetType is TargetCustom.
type AudienceRule struct {
	TargetType       TargetType `json:"target_type"`
	IncludePrograms  []string   `json:"include_programs,omitempty"`
	ExcludePrograms  []string   `json:"exclude_programs,omitempty"`
	IncludePlaylists []string   `json:"include_playlists,omitempty"`
	ExcludePlaylists []string   `json:"exclude_playlists,omitempty"`
	IncludeTools     []string   `json:"include_tools,omitempty"`
	ExcludeTools     []string   `json:"exclude_tools,omitempty"`
}

// Matches evaluates the rule against a user profile.
//
// For custom rules the three dimensions (programs, playlists, tools) are
// combined conjunctively: every dimension must pass. An empty include list
// is "no constraint from this dimension", so a custom rule with all six
// lists empty matches every profile. A disjunctive reading ("any include
// list hits") is also defensible from the admin UI copy; flipping it means
// changing the && chain below, nothing else.
func (r *AudienceRule) Matches(p UserProfile) bool {
	switch r.TargetType {
	case TargetAll:
		return true
	case TargetEnrolled:
		// Any enrollment qualifies, regardless of which program.
		return len(p.EnrolledProgramSlugs) > 0
	case TargetCustom:
		return dimensionPasses(p.EnrolledProgramSlugs, r.IncludePrograms, r.ExcludePrograms) &&
			dimensionPasses(p.AccessedPlaylistIDs, r.IncludePlaylists, r.ExcludePlaylists) &&
			dimensionPasses(p.UsedToolSlugs, r.IncludeTools, r.ExcludeTools)
	default:
		return false
	}
}

// Validate checks the target type is a member of the closed enum.
func (r *AudienceRule) Validate() error {
	switch r.TargetType {
	case TargetAll, TargetEnrolled, TargetCustom:
		return nil
	default:
		return fmt.Errorf("unknown audience target type %q", r.TargetType)
	}
}

// dimensionPasses applies one include/exclude pair to the user's set for
// that dimension. Exclude dominates: a hit there fails the dimension even
// when the include list also matches.
func dimensionPasses(have, include, exclude []string) bool {
	if intersects(have, exclude) {
		return false
	}
	if len(include) == 0 {
		return true
	}
	return intersects(have, include)
}

func intersects(have, want []string) bool {
	for _, v := range want {
		if slices.Contains(have, v) {
			return true
		}
	}
	return false
}

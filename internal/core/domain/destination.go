package domain

import (
	"fmt"
)

// DestinationKind is the closed set of places a banner or a pro-linked task
// can point at.
type DestinationKind string

const (
	KindRoutine         DestinationKind = "routine"
	KindPlaylist        DestinationKind = "playlist"
	KindChannel         DestinationKind = "channel"
	KindProgram         DestinationKind = "program"
	KindRoute           DestinationKind = "route"
	KindTasksBank       DestinationKind = "tasks_bank"
	KindRoutinesHub     DestinationKind = "routines_hub"
	KindBreatheExercise DestinationKind = "breathe_exercise"
	KindJournal         DestinationKind = "journal"
	KindBreathe         DestinationKind = "breathe"
	KindWater           DestinationKind = "water"
	KindEmotion         DestinationKind = "emotion"
	KindPeriod          DestinationKind = "period"
	KindChannels        DestinationKind = "channels"
	KindHome            DestinationKind = "home"
	KindInspire         DestinationKind = "inspire"
	KindChat            DestinationKind = "chat"
	KindProfile         DestinationKind = "profile"
	KindPlanner         DestinationKind = "planner"
	KindCustomURL       DestinationKind = "custom_url"
	KindExternalURL     DestinationKind = "external_url"
)

// AllKinds enumerates every destination kind. ValidateCatalog checks the
// catalog table against it so a kind added here cannot silently resolve to
// "Unknown".
var AllKinds = []DestinationKind{
	KindRoutine, KindPlaylist, KindChannel, KindProgram, KindRoute,
	KindTasksBank, KindRoutinesHub, KindBreatheExercise,
	KindJournal, KindBreathe, KindWater, KindEmotion, KindPeriod,
	KindChannels, KindHome, KindInspire, KindChat, KindProfile, KindPlanner,
	KindCustomURL, KindExternalURL,
}

// Destination is a tagged reference to a navigation target. Exactly one of
// Identifier or URL is populated, determined by Kind: identifier-bearing
// kinds carry an id or slug, the two URL kinds carry a URL, fixed kinds
// carry neither.
type Destination struct {
	Kind       DestinationKind `json:"kind"`
	Identifier string          `json:"identifier,omitempty"`
	URL        string          `json:"url,omitempty"`
}

// LookupCategory names a collaborator-supplied id → display-name table the
// resolver consults for identifier-bearing kinds.
type LookupCategory string

const (
	LookupRoutines         LookupCategory = "routines"
	LookupPlaylists        LookupCategory = "playlists"
	LookupChannels         LookupCategory = "channels"
	LookupPrograms         LookupCategory = "programs"
	LookupTaskTemplates    LookupCategory = "task_templates"
	LookupRoutineBank      LookupCategory = "routine_bank"
	LookupBreatheExercises LookupCategory = "breathe_exercises"
)

// LookupEntry is one row of a lookup table.
type LookupEntry struct {
	Label string
	Emoji string
}

// Lookups holds the lookup tables by category. A nil map, or a missing
// table or entry, degrades resolution to the raw identifier; it never
// fails it.
type Lookups map[LookupCategory]map[string]LookupEntry

// kindSpec is the static catalog entry for one destination kind: what the
// kind requires, which lookup table labels it, and how its navigation path
// is formed. Routes with "%s" take the identifier; KindRoute's identifier
// is itself the path.
type kindSpec struct {
	NeedsIdentifier bool
	NeedsURL        bool
	External        bool
	Lookup          LookupCategory
	Label           string
	Route           string
}

var catalog = map[DestinationKind]kindSpec{
	KindRoutine:         {NeedsIdentifier: true, Lookup: LookupRoutines, Label: "Routine", Route: "/routine/%s"},
	KindPlaylist:        {NeedsIdentifier: true, Lookup: LookupPlaylists, Label: "Playlist", Route: "/playlist/%s"},
	KindChannel:         {NeedsIdentifier: true, Lookup: LookupChannels, Label: "Channel", Route: "/channel/%s"},
	KindProgram:         {NeedsIdentifier: true, Lookup: LookupPrograms, Label: "Program", Route: "/program/%s"},
	KindRoute:           {NeedsIdentifier: true, Label: "Route", Route: "%s"},
	KindTasksBank:       {NeedsIdentifier: true, Lookup: LookupTaskTemplates, Label: "Task", Route: "/tasks/bank/%s"},
	KindRoutinesHub:     {NeedsIdentifier: true, Lookup: LookupRoutineBank, Label: "Routine", Route: "/routines/hub/%s"},
	KindBreatheExercise: {NeedsIdentifier: true, Lookup: LookupBreatheExercises, Label: "Breathing exercise", Route: "/breathe/%s"},
	KindJournal:         {Label: "Journal", Route: "/journal"},
	KindBreathe:         {Label: "Breathe", Route: "/breathe"},
	KindWater:           {Label: "Water", Route: "/water"},
	KindEmotion:         {Label: "Emotions", Route: "/emotion"},
	KindPeriod:          {Label: "Period", Route: "/period"},
	KindChannels:        {Label: "Channels", Route: "/channels"},
	KindHome:            {Label: "Home", Route: "/"},
	KindInspire:         {Label: "Inspire", Route: "/inspire"},
	KindChat:            {Label: "Chat", Route: "/chat"},
	KindProfile:         {Label: "Profile", Route: "/profile"},
	KindPlanner:         {Label: "Planner", Route: "/planner"},
	KindCustomURL:       {NeedsURL: true, Label: "Link"},
	KindExternalURL:     {NeedsURL: true, External: true, Label: "Link"},
}

// ValidateCatalog verifies every destination kind has a catalog entry and
// that no entry demands both an identifier and a URL. main calls it at
// startup so a half-registered kind fails fast instead of resolving to
// "Unknown" in production.
func ValidateCatalog() error {
	for _, k := range AllKinds {
		spec, ok := catalog[k]
		if !ok {
			return fmt.Errorf("destination kind %q has no catalog entry", k)
		}
		if spec.NeedsIdentifier && spec.NeedsURL {
			return fmt.Errorf("destination kind %q requires both identifier and url", k)
		}
	}
	return nil
}

// Validate checks the destination against the catalog invariants: known
// kind, identifier present exactly when the kind needs one, URL present
// exactly when the kind needs one.
func (d Destination) Validate() error {
	spec, ok := catalog[d.Kind]
	if !ok {
		return fmt.Errorf("unknown destination kind %q", d.Kind)
	}
	if spec.NeedsIdentifier && d.Identifier == "" {
		return fmt.Errorf("destination kind %q requires an identifier", d.Kind)
	}
	if !spec.NeedsIdentifier && d.Identifier != "" {
		return fmt.Errorf("destination kind %q does not take an identifier", d.Kind)
	}
	if spec.NeedsURL && d.URL == "" {
		return fmt.Errorf("destination kind %q requires a url", d.Kind)
	}
	if !spec.NeedsURL && d.URL != "" {
		return fmt.Errorf("destination kind %q does not take a url", d.Kind)
	}
	return nil
}

// NavigationType distinguishes navigation that stays inside the app shell
// from navigation that hands off to the system browser.
type NavigationType string

const (
	NavigateInApp    NavigationType = "in_app"
	NavigateExternal NavigationType = "external"
	NavigateNone     NavigationType = "none"
)

// NavigationTarget is where tapping a destination takes the user. Path is
// set for in-app navigation, URL for external.
type NavigationTarget struct {
	Type NavigationType `json:"type"`
	Path string         `json:"path,omitempty"`
	URL  string         `json:"url,omitempty"`
}

// ResolvedDestination pairs a human-readable label with a navigable target.
type ResolvedDestination struct {
	Label  string           `json:"label"`
	Target NavigationTarget `json:"target"`
}

// Resolve turns a destination into a label and a navigation target. It is a
// pure function of its inputs and never fails: unknown kinds resolve to
// "Unknown" with a no-op target, and identifiers absent from the lookup
// tables fall back to the raw identifier string.
//
// custom_url stays inside the app shell (its URL is treated as an in-app
// relative path); external_url always leaves it. The two must never be
// conflated.
func Resolve(d Destination, lookups Lookups) ResolvedDestination {
	spec, ok := catalog[d.Kind]
	if !ok {
		return ResolvedDestination{Label: "Unknown", Target: NavigationTarget{Type: NavigateNone}}
	}

	if spec.NeedsURL {
		if d.URL == "" {
			return ResolvedDestination{Label: spec.Label, Target: NavigationTarget{Type: NavigateNone}}
		}
		if spec.External {
			return ResolvedDestination{Label: spec.Label, Target: NavigationTarget{Type: NavigateExternal, URL: d.URL}}
		}
		return ResolvedDestination{Label: spec.Label, Target: NavigationTarget{Type: NavigateInApp, Path: d.URL}}
	}

	if spec.NeedsIdentifier {
		if d.Identifier == "" {
			// No route can be formed; no-op silently.
			return ResolvedDestination{Label: spec.Label, Target: NavigationTarget{Type: NavigateNone}}
		}
		label := d.Identifier
		if entry, ok := lookups[spec.Lookup][d.Identifier]; ok {
			label = entry.Label
			if entry.Emoji != "" {
				label = entry.Emoji + " " + entry.Label
			}
		}
		return ResolvedDestination{
			Label:  label,
			Target: NavigationTarget{Type: NavigateInApp, Path: fmt.Sprintf(spec.Route, d.Identifier)},
		}
	}

	return ResolvedDestination{Label: spec.Label, Target: NavigationTarget{Type: NavigateInApp, Path: spec.Route}}
}

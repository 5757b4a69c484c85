package domain

// UserProfile describes the audience-relevant facts about a user. It is
// supplied fresh on each evaluation by the persistence layer; the engine
// never caches or mutates it.
type UserProfile struct {
	UserID               string
	EnrolledProgramSlugs []string
	AccessedPlaylistIDs  []string
	UsedToolSlugs        []string
}

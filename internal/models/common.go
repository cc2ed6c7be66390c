package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Actor identifies who performed an admin mutation. It is persisted verbatim
// as audit trail and never validated against an identity system here.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Defaults for mutations performed without a resolvable actor.
const (
	UnknownActorID   = "unknown"
	UnknownActorName = "Unknown User"
)

// OrDefaults fills absent actor fields with the documented fallbacks.
func (a Actor) OrDefaults() Actor {
	if a.ID == "" {
		a.ID = UnknownActorID
	}
	if a.Name == "" {
		a.Name = UnknownActorName
	}
	return a
}

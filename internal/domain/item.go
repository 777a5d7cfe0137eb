package domain

// ItemKind distinguishes the two tracker record types we care about.
type ItemKind string

const (
	KindBug   ItemKind = "bug"
	KindStory ItemKind = "story"
)

// TrackedItem is the unified view of a bug or story assigned to the user.
// Identity is ID; uniqueness is enforced within a single poll snapshot.
type TrackedItem struct {
	ID             string   `json:"id"`
	Kind           ItemKind `json:"type"`
	Name           string   `json:"name"`
	RawStatus      string   `json:"status"`
	Owner          string   `json:"owner"`
	Status         string   `json:"v_status"`
	GamifiedStatus string   `json:"gamified_status"`
	Claimable      bool     `json:"is_claimable"`
}

package domain

// Character is a cosmetic companion purchasable with contribution points.
type Character struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	ModelURL string  `json:"modelUrl"`
	Preview  string  `json:"preview"`
}

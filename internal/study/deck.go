package study

// Card is a single flashcard. CreatedAt and ReviewedAt are epoch
// milliseconds; ReviewedAt is nil until the card has been reviewed once.
type Card struct {
	ID         string `json:"id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	CreatedAt  int64  `json:"createdAt"`
	ReviewedAt *int64 `json:"reviewedAt,omitempty"`
}

// Deck is the per-workspace flashcard deck. Exactly one record exists per
// workspace, keyed by DeriveID. Card order is the creation order and is
// preserved across writes.
type Deck struct {
	ID        string `json:"id"`
	Cards     []Card `json:"cards"`
	UpdatedAt int64  `json:"updatedAt"`
}

// DeriveID returns the storage key of a workspace's deck record.
func DeriveID(workspaceID string) string {
	return "study_" + workspaceID
}

// Default returns the empty deck for a workspace.
func Default(workspaceID string) Deck {
	return Deck{ID: DeriveID(workspaceID), Cards: []Card{}}
}

package streak

// WalkStreak серия дней подряд с хотя бы одной завершенной прогулкой.
// Current никогда не превышает Longest.
type WalkStreak struct {
	Current      int    `json:"current"`
	Longest      int    `json:"longest"`
	LastWalkDate string `json:"lastWalkDate"`
	Version      int    `json:"version,omitempty"`
}

// UpdateRequest тело POST /streak
type UpdateRequest struct {
	WalkDate string `json:"walkDate"`
}

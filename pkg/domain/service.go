package domain

// Service is one record returned by the directory lookup. Values are
// transient: the wizard reads them only to build a selection result and
// never caches them.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Package history stores completed calculations and serves them back,
// most recent first.
package history

import "time"

const (
	// DefaultLimit is the page size used when a caller does not ask for one.
	DefaultLimit = 50
	// MaxLimit caps a single List call.
	MaxLimit = 500
)

// Entry is one completed calculation. IDs are assigned by the store and
// increase monotonically.
type Entry struct {
	ID        int64     `json:"id"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Op        string    `json:"op"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is the JSON body for GET /api/history.
type ListResponse struct {
	Items []Entry `json:"items"`
}

// ClearResponse is the JSON body for DELETE /api/history.
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

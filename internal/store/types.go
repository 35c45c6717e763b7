package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShapeRecord is a persisted shape. Only the dimensions relevant to Kind
// are meaningful; the others are zero.
type ShapeRecord struct {
	ID        int64
	UID       string
	Kind      string
	Radius    float64
	Width     float64
	Height    float64
	Source    string // script path that produced the row, empty for direct inserts
	CreatedAt time.Time
}

// ScriptRun records the last successful load of a catalog script.
type ScriptRun struct {
	Path       string
	Hash       string
	ShapeCount int
	LoadedAt   time.Time
}

// KindCount is the number of stored shapes of one kind.
type KindCount struct {
	Kind  string
	Count int
}

// fillDefaults assigns a UID and creation time when absent and normalizes
// Kind to lower case.
func (r *ShapeRecord) fillDefaults() {
	if r.UID == "" {
		r.UID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	r.Kind = strings.ToLower(r.Kind)
}

package main

import "time"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIShape is a JSON-friendly shape representation. ID and UID are set
// only for stored shapes.
type CLIShape struct {
	ID          int64      `json:"id,omitempty"`
	UID         string     `json:"uid,omitempty"`
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	Area        float64    `json:"area"`
	Radius      float64    `json:"radius,omitempty"`
	Width       float64    `json:"width,omitempty"`
	Height      float64    `json:"height,omitempty"`
	Source      string     `json:"source,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CLIStat is a JSON-friendly per-kind count.
type CLIStat struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// CLILoadResult is a JSON-friendly script load outcome.
type CLILoadResult struct {
	Path       string `json:"path"`
	Hash       string `json:"hash"`
	Added      int    `json:"added"`
	Skipped    bool   `json:"skipped"`
	DurationMS int64  `json:"duration_ms"`
}

// CLIScript is a JSON-friendly available script with its last load, if any.
type CLIScript struct {
	Path       string     `json:"path"`
	Hash       string     `json:"hash,omitempty"`
	ShapeCount int        `json:"shape_count"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
}

// CLIDemo is the output of one demo section.
type CLIDemo struct {
	Name   string   `json:"name"`
	Output []string `json:"output"`
}

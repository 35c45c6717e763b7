// Package scripts embeds the catalog scripts shipped with the shapes CLI.
package scripts

import "embed"

// FS holds catalog/*.risor.
//
//go:embed catalog
var FS embed.FS

// Package data provides the embedded game data files.
package data

import "embed"

// dataFS embeds the building catalog and theme at build time.
//
//go:embed *.yaml *.json
var dataFS embed.FS

// FS returns the embedded filesystem containing game data.
func FS() embed.FS {
	return dataFS
}

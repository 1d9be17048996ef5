// Package gamedata loads and validates the embedded game data.
package gamedata

import "github.com/samdwyer/typecity/data"

// dataFS is the embedded filesystem data files are read from.
var dataFS = data.FS()

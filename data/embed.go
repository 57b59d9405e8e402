// Package data ships the default recipe catalog and gathering tables.
package data

import _ "embed"

// Recipes is the default recipes.json.
//
//go:embed recipes.json
var Recipes []byte

// Gathering is the default gathering.json.
//
//go:embed gathering.json
var Gathering []byte

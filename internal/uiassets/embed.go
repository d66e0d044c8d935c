package uiassets

import "embed"

// Files contains the bundled dashboard page.
//
//go:embed dist
var Files embed.FS

// Package web holds the embedded browser chat client served by the
// application binary.
package web

import "embed"

//go:embed static
var Static embed.FS

// Package assets embeds the files installed by 'lockbreak setup'.
package assets

import _ "embed"

// LogoSVG is the application icon.
//
//go:embed logo.svg
var LogoSVG []byte

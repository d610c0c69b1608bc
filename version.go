package ml4ir

import _ "embed"

// Version is the release of the gate, read from the VERSION file.
//
//go:embed VERSION
var Version string

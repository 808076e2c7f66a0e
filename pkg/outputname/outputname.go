// Package outputname derives the local filename for a downloaded artifact.
// Two historical conventions exist; they are a single configurable policy
// here instead of duplicated logic.
package outputname

import (
	"path/filepath"
	"strings"
)

const CodecExtension = ".skc"

const (
	PolicyReplaceExtension = "replace_extension"
	PolicyPrefix           = "prefix"
)

// Derive returns the name the downloaded artifact should be saved under.
// PolicyReplaceExtension strips the trailing extension and appends the codec
// extension. PolicyPrefix keeps the original name prefixed with "compressed_"
// (the convention the server uses on its attachment header).
func Derive(policy string, originalName string) string {
	switch policy {
	case PolicyPrefix:
		return "compressed_" + originalName
	default:
		ext := filepath.Ext(originalName)
		return strings.TrimSuffix(originalName, ext) + CodecExtension
	}
}

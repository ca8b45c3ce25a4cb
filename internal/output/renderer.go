package output

import (
	"io"

	"github.com/trujunzhang/cyclefinder/internal/types"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	// Render writes the check result to the writer
	Render(w io.Writer, result *types.CheckResult) error
}

// Format represents an output format
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatCompact    Format = "compact"
	FormatSARIF      Format = "sarif"
	FormatJUnit      Format = "junit"
	FormatCheckstyle Format = "checkstyle"
)

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatCompact:
		return &CompactRenderer{}
	case FormatSARIF:
		return &SARIFRenderer{}
	case FormatJUnit:
		return &JUnitRenderer{}
	case FormatCheckstyle:
		return &CheckstyleRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}

// ValidFormats returns the names of all supported output formats
func ValidFormats() []string {
	return []string{"text", "json", "compact", "checkstyle", "junit", "sarif"}
}

// IsValidFormat reports whether format names a supported output format
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// Package annotation scans model files for inline whitelist entries.
//
// A comment of the form
//
//	# cyclefinder:whitelist field com.example.Registry.cache
//
// adds the entry after the marker to the same registry the whitelist files
// feed, using the same rule syntax and the same fatality for malformed
// text. Placement in the file carries no meaning; the entry applies
// globally, exactly as if it came from a rule file.
package annotation

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/trujunzhang/cyclefinder/internal/whitelist"
)

// marker starts an inline whitelist annotation
const marker = "cyclefinder:whitelist"

// Annotation is one inline whitelist entry found in a model file
type Annotation struct {
	// Entry is the rule text after the marker, comment-stripped and trimmed
	Entry string

	Filename string
	Line     int
}

// ParseFile scans the source of a model file for inline whitelist
// annotations. Comments that do not carry the marker are ignored. The
// returned annotations appear in source order.
func ParseFile(filename string, src []byte) ([]*Annotation, error) {
	tokens, diags := hclsyntax.LexConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to scan %s: %s", filename, diags.Error())
	}

	var annotations []*Annotation
	for _, token := range tokens {
		if token.Type != hclsyntax.TokenComment {
			continue
		}

		text := string(token.Bytes)
		text = strings.TrimPrefix(text, "#")
		text = strings.TrimPrefix(text, "//")
		text = strings.TrimSpace(text)

		rest, ok := strings.CutPrefix(text, marker)
		if !ok {
			continue
		}
		// require a token boundary so e.g. cyclefinder:whitelisted is not ours
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		// the entry follows rule-file syntax, including trailing comments
		if i := strings.IndexByte(rest, '#'); i >= 0 {
			rest = rest[:i]
		}

		annotations = append(annotations, &Annotation{
			Entry:    strings.TrimSpace(rest),
			Filename: filename,
			Line:     token.Range.Start.Line,
		})
	}

	return annotations, nil
}

// Apply inserts the annotations' entries into the whitelist. The first
// malformed entry aborts with file:line context, keeping the
// MalformedEntryError matchable via errors.As.
func Apply(w *whitelist.Whitelist, annotations []*Annotation) error {
	for _, ann := range annotations {
		if err := w.AddEntry(ann.Entry); err != nil {
			return fmt.Errorf("%s:%d: %w", ann.Filename, ann.Line, err)
		}
	}
	return nil
}

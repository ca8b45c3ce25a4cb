package cycles

import (
	"fmt"
	"strings"

	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/whitelist"
)

// SuppressionReason reports why the whitelist suppresses the cycle, or ""
// when it does not. A cycle is suppressed when any of its types is
// whitelisted (directly or through a namespace), when any field edge is
// covered by a bare or typed field entry, or when any outer edge starts
// at a type with a whitelisted outer. Nodes are consulted before edges
// and edges in cycle order, so the reason is stable.
func SuppressionReason(c *Cycle, w *whitelist.Whitelist) string {
	for _, node := range c.Nodes() {
		if w.ContainsType(node) {
			return fmt.Sprintf("type %s is whitelisted", node)
		}
	}
	for _, e := range c.Edges {
		if e.Outer {
			if w.HasWhitelistedOuter(e.From) {
				return fmt.Sprintf("outer reference from %s is whitelisted", e.From)
			}
			continue
		}
		if w.ContainsField(e.Field) {
			return fmt.Sprintf("field %s is whitelisted", e.Field)
		}
		if w.HasTypedRulesForField(e.Field) && w.IsTypeWhitelistedForField(e.Field, e.To) {
			return fmt.Sprintf("field %s is whitelisted for type %s", e.Field, e.To)
		}
	}
	return ""
}

// UnusedEntries returns the whitelist entries that reference nothing in
// the model: field entries naming no declared field, typed field entries
// whose field or declared type does not match, type entries naming no
// model type, namespace entries covering no model type, and outer
// entries naming no type that declares an outer reference. Order follows
// Entries().
func UnusedEntries(g *graph.Graph, w *whitelist.Whitelist) []whitelist.Entry {
	fieldTargets := make(map[string]string)
	typeSet := make(map[string]bool)
	typeNames := make([]string, 0, g.Len())
	outers := make(map[string]bool)

	for _, t := range g.Types() {
		name := t.CanonicalName()
		typeSet[name] = true
		typeNames = append(typeNames, name)
		if t.Outer != "" {
			outers[name] = true
		}
		for _, f := range t.Fields {
			fieldTargets[t.FieldName(f)] = graph.CanonicalTypeRef(f.TypeName)
		}
	}

	var unused []whitelist.Entry
	for _, e := range w.Entries() {
		used := false
		switch e.Kind {
		case whitelist.KindField:
			_, used = fieldTargets[e.Name]
		case whitelist.KindFieldType:
			used = fieldTargets[e.Name] == e.TypeName
		case whitelist.KindType:
			used = typeSet[e.Name]
		case whitelist.KindNamespace:
			used = coversAnyType(e.Name, typeNames)
		case whitelist.KindOuter:
			used = outers[e.Name]
		}
		if !used {
			unused = append(unused, e)
		}
	}
	return unused
}

// coversAnyType reports whether a namespace entry matches at least one
// model type, by name or by dot-bounded prefix
func coversAnyType(ns string, typeNames []string) bool {
	prefix := ns + "."
	for _, name := range typeNames {
		if name == ns || strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Package whitelist implements the suppression registry consulted by the
// cycle checks. Rule files hold one entry per line:
//
//	field <qualifiedFieldName>                      # suppress the field for any type
//	field <qualifiedFieldName> <qualifiedTypeName>  # suppress the field for one type
//	type <qualifiedTypeName>                        # suppress a single type
//	namespace <qualifiedNamePrefix>                 # suppress everything nested under a name
//	outer <qualifiedTypeName>                       # suppress the type's outer reference
//
// Keywords are case-insensitive, names are case-sensitive, and a trailing
// "#" comment is stripped before tokenizing. Entries from multiple sources
// are a pure union: later files add to earlier ones and never override.
package whitelist

import (
	"sort"
	"strings"
)

// Whitelist holds the five lookup tables built from rule entries.
//
// A Whitelist is populated during load and must not be mutated afterwards;
// concurrent readers are safe without locking because nothing writes
// post-load.
type Whitelist struct {
	fields     map[string]struct{}
	fieldTypes map[string]map[string]struct{}
	types      map[string]struct{}
	namespaces map[string]struct{}
	outers     map[string]struct{}
}

// New returns an empty whitelist
func New() *Whitelist {
	return &Whitelist{
		fields:     make(map[string]struct{}),
		fieldTypes: make(map[string]map[string]struct{}),
		types:      make(map[string]struct{}),
		namespaces: make(map[string]struct{}),
		outers:     make(map[string]struct{}),
	}
}

// ContainsField reports whether a bare field entry names the field,
// regardless of the field's type
func (w *Whitelist) ContainsField(field string) bool {
	_, ok := w.fields[field]
	return ok
}

// HasTypedRulesForField reports whether any typed field entry names the
// field. Callers use it to decide whether a type-specific check applies.
func (w *Whitelist) HasTypedRulesForField(field string) bool {
	return len(w.fieldTypes[field]) > 0
}

// IsTypeWhitelistedForField reports whether a typed field entry pairs the
// field with exactly the given type. No hierarchy matching happens here.
func (w *Whitelist) IsTypeWhitelistedForField(field, typeName string) bool {
	_, ok := w.fieldTypes[field][typeName]
	return ok
}

// HasWhitelistedOuter reports whether an outer entry names the type
func (w *Whitelist) HasWhitelistedOuter(typeName string) bool {
	_, ok := w.outers[typeName]
	return ok
}

// ContainsType reports whether the type is suppressed, either by an exact
// type entry or by a namespace entry covering it. Namespace matching walks
// the name's ancestor chain by repeatedly truncating at the last ".", so a
// namespace entry suppresses the named scope and everything nested in it.
func (w *Whitelist) ContainsType(typeName string) bool {
	if _, ok := w.types[typeName]; ok {
		return true
	}
	ns := typeName
	for {
		if _, ok := w.namespaces[ns]; ok {
			return true
		}
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			return false
		}
		ns = ns[:i]
	}
}

// EntryKind identifies which table a rule entry populates
type EntryKind int

const (
	KindField EntryKind = iota
	KindFieldType
	KindType
	KindNamespace
	KindOuter
)

// String returns a human-readable label for the kind
func (k EntryKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindFieldType:
		return "typed field"
	case KindType:
		return "type"
	case KindNamespace:
		return "namespace"
	case KindOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// Entry is one loaded rule, reconstructed from the tables for diagnostics
type Entry struct {
	Kind EntryKind

	// Name is the qualified field name for field entries, the type name
	// for type and outer entries, and the prefix for namespace entries
	Name string

	// TypeName is the paired type of a typed field entry, empty otherwise
	TypeName string
}

// String renders the entry in rule-file syntax
func (e Entry) String() string {
	switch e.Kind {
	case KindField:
		return "field " + e.Name
	case KindFieldType:
		return "field " + e.Name + " " + e.TypeName
	case KindType:
		return "type " + e.Name
	case KindNamespace:
		return "namespace " + e.Name
	case KindOuter:
		return "outer " + e.Name
	default:
		return e.Name
	}
}

// Entries returns every loaded rule, sorted by kind then name, so
// diagnostics over the registry are deterministic
func (w *Whitelist) Entries() []Entry {
	entries := make([]Entry, 0, w.Len())
	for name := range w.fields {
		entries = append(entries, Entry{Kind: KindField, Name: name})
	}
	for name, set := range w.fieldTypes {
		for typeName := range set {
			entries = append(entries, Entry{Kind: KindFieldType, Name: name, TypeName: typeName})
		}
	}
	for name := range w.types {
		entries = append(entries, Entry{Kind: KindType, Name: name})
	}
	for name := range w.namespaces {
		entries = append(entries, Entry{Kind: KindNamespace, Name: name})
	}
	for name := range w.outers {
		entries = append(entries, Entry{Kind: KindOuter, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].TypeName < entries[j].TypeName
	})
	return entries
}

// Len returns the total number of loaded entries
func (w *Whitelist) Len() int {
	n := len(w.fields) + len(w.types) + len(w.namespaces) + len(w.outers)
	for _, set := range w.fieldTypes {
		n += len(set)
	}
	return n
}

package graph

import "strings"

// Canonical names are what whitelist entries and analysis output speak in:
// dot-joined segments from the package down to the type, with method-local
// types qualified by their declaring method and anonymous types represented
// by the segment "$". Generic parameterizations are erased, so a whitelist
// entry for Box suppresses Box<Item> too.

// CanonicalName returns the fully qualified name of the type
func (t *Type) CanonicalName() string {
	name := t.Name
	if t.Anonymous {
		name = "$"
	} else {
		name = CanonicalTypeRef(name)
	}
	switch {
	case t.Method != "":
		return t.Enclosing + "." + t.Method + "." + name
	case t.Enclosing != "":
		return t.Enclosing + "." + name
	case t.Package != "":
		return t.Package + "." + name
	default:
		return name
	}
}

// FieldName returns the fully qualified name of a field declared on the type
func (t *Type) FieldName(f *Field) string {
	return t.CanonicalName() + "." + f.Name
}

// CanonicalTypeRef normalizes a declared type reference for lookup and
// matching: surrounding whitespace is trimmed and any generic
// parameterization is stripped.
func CanonicalTypeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexByte(ref, '<'); i >= 0 {
		ref = ref[:i]
	}
	return ref
}

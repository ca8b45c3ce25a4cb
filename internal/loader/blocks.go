package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/types"
)

// fileSchema defines the top level of a model file
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "package", LabelNames: []string{"name"}},
	},
}

// packageSchema defines the content of a package block
var packageSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "type", LabelNames: []string{"name"}},
	},
}

// typeSchema defines the content of a type block
var typeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "enclosing"},
		{Name: "method"},
		{Name: "anonymous"},
		{Name: "outer"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

// fieldSchema defines the content of a field block
var fieldSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "weak"},
		{Name: "static"},
	},
}

// loadFile parses a single model file and adds its types to the graph,
// returning how many types it contributed
func (l *Loader) loadFile(parser *hclparse.Parser, path string, g *graph.Graph) (int, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return 0, fmt.Errorf("HCL parse error: %s", diags.Error())
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid model file %s: %s", path, diags.Error())
	}

	added := 0
	for _, block := range content.Blocks {
		pkgName := block.Labels[0]
		// the empty label denotes the default package
		if pkgName != "" {
			if err := validateName("package", pkgName); err != nil {
				return 0, fmt.Errorf("%s:%d: %w",
					block.DefRange.Filename, block.DefRange.Start.Line, err)
			}
		}
		n, err := loadPackage(block, pkgName, g)
		if err != nil {
			return 0, err
		}
		added += n
	}
	return added, nil
}

// loadPackage parses the type blocks of a package block
func loadPackage(block *hcl.Block, pkgName string, g *graph.Graph) (int, error) {
	content, diags := block.Body.Content(packageSchema)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid package block at %s:%d: %s",
			block.DefRange.Filename, block.DefRange.Start.Line, diags.Error())
	}

	added := 0
	for _, tb := range content.Blocks {
		typ, err := parseTypeBlock(tb, pkgName)
		if err != nil {
			return 0, err
		}
		if err := g.AddType(typ); err != nil {
			return 0, fmt.Errorf("%s:%d: %w",
				tb.DefRange.Filename, tb.DefRange.Start.Line, err)
		}
		added++
	}
	return added, nil
}

// parseTypeBlock parses a single type block
func parseTypeBlock(block *hcl.Block, pkgName string) (*graph.Type, error) {
	name := block.Labels[0]
	at := fmt.Sprintf("%s:%d", block.DefRange.Filename, block.DefRange.Start.Line)

	content, diags := block.Body.Content(typeSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid type block at %s: %s", at, diags.Error())
	}

	typ := &graph.Type{
		Package:   pkgName,
		Name:      name,
		DeclRange: rangeOf(block.DefRange),
	}

	var err error
	if typ.Enclosing, err = stringAttr(content, "enclosing"); err != nil {
		return nil, fmt.Errorf("invalid type %q at %s: %w", name, at, err)
	}
	if typ.Method, err = stringAttr(content, "method"); err != nil {
		return nil, fmt.Errorf("invalid type %q at %s: %w", name, at, err)
	}
	if typ.Anonymous, err = boolAttr(content, "anonymous"); err != nil {
		return nil, fmt.Errorf("invalid type %q at %s: %w", name, at, err)
	}
	if typ.Outer, err = stringAttr(content, "outer"); err != nil {
		return nil, fmt.Errorf("invalid type %q at %s: %w", name, at, err)
	}

	if !typ.Anonymous {
		if err := validateName("type", graph.CanonicalTypeRef(name)); err != nil {
			return nil, fmt.Errorf("at %s: %w", at, err)
		}
	}
	if typ.Method != "" && typ.Enclosing == "" {
		return nil, fmt.Errorf("invalid type %q at %s: method-local type requires enclosing", name, at)
	}
	if typ.Anonymous && typ.Enclosing == "" {
		return nil, fmt.Errorf("invalid type %q at %s: anonymous type requires enclosing", name, at)
	}
	for attr, value := range map[string]string{
		"enclosing": typ.Enclosing,
		"method":    typ.Method,
		"outer":     typ.Outer,
	} {
		if value == "" {
			continue
		}
		if err := validateName(attr, value); err != nil {
			return nil, fmt.Errorf("invalid type %q at %s: %w", name, at, err)
		}
	}

	seen := make(map[string]bool)
	for _, fb := range content.Blocks {
		field, err := parseFieldBlock(fb)
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, fmt.Errorf("invalid type %q at %s: duplicate field %q", name, at, field.Name)
		}
		seen[field.Name] = true
		typ.Fields = append(typ.Fields, field)
	}

	return typ, nil
}

// parseFieldBlock parses a single field block
func parseFieldBlock(block *hcl.Block) (*graph.Field, error) {
	name := block.Labels[0]
	at := fmt.Sprintf("%s:%d", block.DefRange.Filename, block.DefRange.Start.Line)

	content, diags := block.Body.Content(fieldSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid field block at %s: %s", at, diags.Error())
	}

	if err := validateName("field", name); err != nil {
		return nil, fmt.Errorf("at %s: %w", at, err)
	}

	field := &graph.Field{
		Name:      name,
		DeclRange: rangeOf(block.DefRange),
	}

	var err error
	if field.TypeName, err = stringAttr(content, "type"); err != nil {
		return nil, fmt.Errorf("invalid field %q at %s: %w", name, at, err)
	}
	if field.TypeName == "" {
		return nil, fmt.Errorf("invalid field %q at %s: missing type", name, at)
	}
	if err := validateName("field type", graph.CanonicalTypeRef(field.TypeName)); err != nil {
		return nil, fmt.Errorf("invalid field %q at %s: %w", name, at, err)
	}

	if field.Weak, err = boolAttr(content, "weak"); err != nil {
		return nil, fmt.Errorf("invalid field %q at %s: %w", name, at, err)
	}
	if field.Static, err = boolAttr(content, "static"); err != nil {
		return nil, fmt.Errorf("invalid field %q at %s: %w", name, at, err)
	}

	return field, nil
}

// stringAttr evaluates an optional string attribute, returning "" when absent
func stringAttr(content *hcl.BodyContent, name string) (string, error) {
	attr, exists := content.Attributes[name]
	if !exists {
		return "", nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate %s: %s", name, diags.Error())
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("%s must be a string, got %s", name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

// boolAttr evaluates an optional boolean attribute, returning false when absent
func boolAttr(content *hcl.BodyContent, name string) (bool, error) {
	attr, exists := content.Attributes[name]
	if !exists {
		return false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate %s: %s", name, diags.Error())
	}
	if val.Type() != cty.Bool {
		return false, fmt.Errorf("%s must be a boolean, got %s", name, val.Type().FriendlyName())
	}
	return val.True(), nil
}

// rangeOf converts an HCL source range to a FileRange
func rangeOf(r hcl.Range) types.FileRange {
	return types.FileRange{
		Filename:  r.Filename,
		Line:      r.Start.Line,
		Column:    r.Start.Column,
		EndLine:   r.End.Line,
		EndColumn: r.End.Column,
	}
}

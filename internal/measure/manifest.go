package measure

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/fsutil"
	"github.com/vk/osmkitgo/internal/task"
)

// Manifest is the declarative description of one measure: where its
// implementation lives and which arguments it accepts. Arguments are
// validated against the inputs before the external process is launched.
type Manifest struct {
	Name        string
	Description string
	Directory   string
	Inputs      map[string]task.InputSpec
	DeclRange   hcl.Range
}

var manifestRootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "measure", LabelNames: []string{"name"}},
	},
}

var measureBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "directory"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "input", LabelNames: []string{"name"}},
	},
}

var inputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// LoadManifests reads every .hcl manifest under the given path and returns
// the measures keyed by name. Duplicate names across files are an error.
func LoadManifests(ctx context.Context, path string) (map[string]*Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("walk measures path: %w", err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl measure manifests found in path", "path", path)
		return map[string]*Manifest{}, nil
	}

	parser := hclparse.NewParser()
	manifests := make(map[string]*Manifest)

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse manifest file %s: %w", filePath, diags)
		}
		parsed, diags := decodeManifests(hclFile.Body, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("decode manifest file %s: %w", filePath, diags)
		}
		for _, mf := range parsed {
			if prev, dup := manifests[mf.Name]; dup {
				return nil, fmt.Errorf("duplicate measure %q at %s (first declared at %s)", mf.Name, mf.DeclRange, prev.DeclRange)
			}
			manifests[mf.Name] = mf
		}
	}

	logger.Info("Measure manifests loaded.", "count", len(manifests))
	return manifests, nil
}

func decodeManifests(body hcl.Body, filePath string) ([]*Manifest, hcl.Diagnostics) {
	content, diags := body.Content(manifestRootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var manifests []*Manifest
	for _, block := range content.Blocks {
		mf, mfDiags := decodeManifest(block, filePath)
		diags = append(diags, mfDiags...)
		if mfDiags.HasErrors() {
			continue
		}
		manifests = append(manifests, mf)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return manifests, diags
}

func decodeManifest(block *hcl.Block, filePath string) (*Manifest, hcl.Diagnostics) {
	mf := &Manifest{
		Name:      block.Labels[0],
		Inputs:    make(map[string]task.InputSpec),
		DeclRange: block.DefRange,
	}

	content, diags := block.Body.Content(measureBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, exists := content.Attributes["description"]; exists {
		v, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() && v.Type() == cty.String && !v.IsNull() {
			mf.Description = v.AsString()
		}
	}

	dirAttr, exists := content.Attributes["directory"]
	if !exists {
		missingRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'directory' attribute",
			Detail:   "Every measure block must name the directory holding its implementation.",
			Subject:  &missingRange,
		})
	} else {
		v, valDiags := dirAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			dir := v.AsString()
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(filepath.Dir(filePath), dir)
			}
			mf.Directory = dir
		}
	}

	for _, inputBlock := range content.Blocks {
		name := inputBlock.Labels[0]
		if _, dup := mf.Inputs[name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate input definition",
				Detail:   fmt.Sprintf("An input named '%s' has already been defined for measure '%s'.", name, mf.Name),
				Subject:  &inputBlock.DefRange,
			})
			continue
		}
		spec, inputDiags := decodeInput(inputBlock, name)
		diags = append(diags, inputDiags...)
		if inputDiags.HasErrors() {
			continue
		}
		mf.Inputs[name] = spec
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return mf, diags
}

func decodeInput(block *hcl.Block, name string) (task.InputSpec, hcl.Diagnostics) {
	var spec task.InputSpec

	content, diags := block.Body.Content(inputBodySchema)
	if diags.HasErrors() {
		return spec, diags
	}

	typeAttr, exists := content.Attributes["type"]
	if !exists {
		missingRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all input blocks.",
			Subject:  &missingRange,
		})
		return spec, diags
	}

	ctyType, typeDiags := typeexpr.TypeConstraint(typeAttr.Expr)
	diags = append(diags, typeDiags...)
	if typeDiags.HasErrors() {
		return spec, diags
	}
	spec.Type = ctyType

	if descAttr, exists := content.Attributes["description"]; exists {
		v, valDiags := descAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() && v.Type() == cty.String && !v.IsNull() {
			spec.Description = v.AsString()
		}
	}

	if defaultAttr, exists := content.Attributes["default"]; exists {
		// Defaults must be literal values.
		v, valDiags := defaultAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return spec, diags
		}
		conv, err := convert.Convert(v, ctyType)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid default value type",
				Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s'.", name, ctyType.FriendlyName()),
				Subject:  defaultAttr.Expr.Range().Ptr(),
			})
			return spec, diags
		}
		spec.Default = &conv
	}

	return spec, diags
}

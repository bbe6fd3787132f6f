// Package hcl loads product catalogs authored in HCL.
// A catalog directory holds .hcl files declaring paper, coating, sides,
// size, addon, and turnaround blocks. Files are parsed with hclparse and
// values are converted defensively: unknown or null values are rejected
// with a parsing error, never passed through.
package hcl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"printcost/catalog"
	"printcost/internal/errors"
)

// Loader parses catalog HCL files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

var catalogSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "paper", LabelNames: []string{"id"}},
		{Type: "coating", LabelNames: []string{"id"}},
		{Type: "sides", LabelNames: []string{"id"}},
		{Type: "size", LabelNames: []string{"id"}},
		{Type: "addon", LabelNames: []string{"id"}},
		{Type: "turnaround", LabelNames: []string{"id"}},
	},
}

// LoadDir loads and validates every .hcl file in a directory
func (l *Loader) LoadDir(dir string) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Parsing("failed to read catalog directory", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".hcl") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.Parsing("no .hcl catalog files in "+dir, nil)
	}

	return l.LoadFiles(files...)
}

// LoadFiles loads and validates the given catalog files
func (l *Loader) LoadFiles(paths ...string) (*catalog.Catalog, error) {
	cat := &catalog.Catalog{}

	for _, path := range paths {
		file, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, errors.Parsing("failed to parse "+path, diags)
		}
		if err := l.loadBody(file.Body, cat); err != nil {
			return nil, err
		}
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadSource parses catalog HCL from memory, used by tests
func (l *Loader) LoadSource(filename string, src []byte) (*catalog.Catalog, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse "+filename, diags)
	}

	cat := &catalog.Catalog{}
	if err := l.loadBody(file.Body, cat); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (l *Loader) loadBody(body hcl.Body, cat *catalog.Catalog) error {
	content, diags := body.Content(catalogSchema)
	if diags.HasErrors() {
		return errors.Parsing("invalid catalog structure", diags)
	}

	for _, block := range content.Blocks {
		id := block.Labels[0]
		var err error

		switch block.Type {
		case "paper":
			err = l.loadPaper(id, block.Body, cat)
		case "coating":
			err = l.loadCoating(id, block.Body, cat)
		case "sides":
			err = l.loadSides(id, block.Body, cat)
		case "size":
			err = l.loadSize(id, block.Body, cat)
		case "addon":
			err = l.loadAddOn(id, block.Body, cat)
		case "turnaround":
			err = l.loadTurnaround(id, block.Body, cat)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadPaper(id string, body hcl.Body, cat *catalog.Catalog) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return errors.Parsing("invalid paper block "+id, diags)
	}

	p := catalog.Paper{ID: id}
	var err error
	if p.Name, err = requireString(attrs, "name", id); err != nil {
		return err
	}
	if p.PricePerSquareInch, err = requireDecimal(attrs, "price_per_square_inch", id); err != nil {
		return err
	}
	if p.WeightPerSquareInch, err = requireDecimal(attrs, "weight_per_square_inch", id); err != nil {
		return err
	}

	cat.Papers = append(cat.Papers, p)
	return nil
}

func (l *Loader) loadCoating(id string, body hcl.Body, cat *catalog.Catalog) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return errors.Parsing("invalid coating block "+id, diags)
	}

	c := catalog.CoatingOption{ID: id}
	var err error
	if c.Name, err = requireString(attrs, "name", id); err != nil {
		return err
	}
	if c.Multiplier, err = requireDecimal(attrs, "multiplier", id); err != nil {
		return err
	}

	cat.Coatings = append(cat.Coatings, c)
	return nil
}

func (l *Loader) loadSides(id string, body hcl.Body, cat *catalog.Catalog) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return errors.Parsing("invalid sides block "+id, diags)
	}

	s := catalog.SidesOption{ID: id}
	var err error
	if s.Name, err = requireString(attrs, "name", id); err != nil {
		return err
	}
	if s.Multiplier, err = requireDecimal(attrs, "multiplier", id); err != nil {
		return err
	}

	cat.Sides = append(cat.Sides, s)
	return nil
}

func (l *Loader) loadSize(id string, body hcl.Body, cat *catalog.Catalog) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return errors.Parsing("invalid size block "+id, diags)
	}

	s := catalog.Size{ID: id}
	var err error
	if s.Name, err = requireString(attrs, "name", id); err != nil {
		return err
	}
	if s.Width, err = requireDecimal(attrs, "width", id); err != nil {
		return err
	}
	if s.Height, err = requireDecimal(attrs, "height", id); err != nil {
		return err
	}

	cat.Sizes = append(cat.Sizes, s)
	return nil
}

var addOnSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "extra_turnaround_days"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pricing"},
		{Type: "sub_option", LabelNames: []string{"id"}},
	},
}

func (l *Loader) loadAddOn(id string, body hcl.Body, cat *catalog.Catalog) error {
	content, diags := body.Content(addOnSchema)
	if diags.HasErrors() {
		return errors.Parsing("invalid addon block "+id, diags)
	}

	a := catalog.AddOn{ID: id}
	var err error
	if a.Name, err = requireString(content.Attributes, "name", id); err != nil {
		return err
	}
	if a.ExtraTurnaroundDays, err = optionalInt(content.Attributes, "extra_turnaround_days", id, 0); err != nil {
		return err
	}

	havePricing := false
	for _, block := range content.Blocks {
		switch block.Type {
		case "pricing":
			a.Pricing, err = l.loadPricing(id, block.Body)
			if err != nil {
				return err
			}
			havePricing = true
		case "sub_option":
			sub, err := l.loadSubOption(id, block.Labels[0], block.Body)
			if err != nil {
				return err
			}
			a.SubOptions = append(a.SubOptions, sub)
		}
	}

	if !havePricing {
		return errors.Parsing("addon "+id+" has no pricing block", nil)
	}

	cat.AddOns = append(cat.AddOns, a)
	return nil
}

func (l *Loader) loadPricing(addonID string, body hcl.Body) (catalog.AddonPricingModel, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return catalog.AddonPricingModel{}, errors.Parsing("invalid pricing block in addon "+addonID, diags)
	}

	var m catalog.AddonPricingModel
	kind, err := requireString(attrs, "kind", addonID)
	if err != nil {
		return m, err
	}
	m.Kind = catalog.PricingKind(kind)

	if m.Amount, err = optionalDecimal(attrs, "amount", addonID); err != nil {
		return m, err
	}
	if m.Rate, err = optionalDecimal(attrs, "rate", addonID); err != nil {
		return m, err
	}
	if m.PricePerUnit, err = optionalDecimal(attrs, "price_per_unit", addonID); err != nil {
		return m, err
	}
	if m.UnitName, err = optionalString(attrs, "unit_name", addonID); err != nil {
		return m, err
	}
	if m.UnitsPerBundleOption, err = optionalString(attrs, "units_per_bundle_option", addonID); err != nil {
		return m, err
	}
	if m.DefaultUnitsPerBundle, err = optionalInt(attrs, "default_units_per_bundle", addonID, 0); err != nil {
		return m, err
	}
	if m.Formula, err = optionalString(attrs, "formula", addonID); err != nil {
		return m, err
	}
	if m.Params, err = optionalDecimalMap(attrs, "params", addonID); err != nil {
		return m, err
	}

	return m, nil
}

func (l *Loader) loadSubOption(addonID, id string, body hcl.Body) (catalog.SubOption, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return catalog.SubOption{}, errors.Parsing("invalid sub_option "+id+" in addon "+addonID, diags)
	}

	s := catalog.SubOption{ID: id}
	var err error
	if s.Label, err = requireString(attrs, "label", id); err != nil {
		return s, err
	}
	if s.Required, err = optionalBool(attrs, "required", id); err != nil {
		return s, err
	}
	if s.AffectsPricing, err = optionalBool(attrs, "affects_pricing", id); err != nil {
		return s, err
	}
	if s.Values, err = optionalStringList(attrs, "values", id); err != nil {
		return s, err
	}
	if s.Default, err = optionalString(attrs, "default", id); err != nil {
		return s, err
	}

	return s, nil
}

var turnaroundSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "days_min", Required: true},
		{Name: "days_max", Required: true},
		{Name: "is_default"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pricing"},
	},
}

func (l *Loader) loadTurnaround(id string, body hcl.Body, cat *catalog.Catalog) error {
	content, diags := body.Content(turnaroundSchema)
	if diags.HasErrors() {
		return errors.Parsing("invalid turnaround block "+id, diags)
	}

	t := catalog.TurnaroundTier{ID: id}
	var err error
	if t.Name, err = requireString(content.Attributes, "name", id); err != nil {
		return err
	}
	if t.DaysMin, err = optionalInt(content.Attributes, "days_min", id, 0); err != nil {
		return err
	}
	if t.DaysMax, err = optionalInt(content.Attributes, "days_max", id, 0); err != nil {
		return err
	}
	if t.IsDefault, err = optionalBool(content.Attributes, "is_default", id); err != nil {
		return err
	}

	havePricing := false
	for _, block := range content.Blocks {
		if block.Type != "pricing" {
			continue
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return errors.Parsing("invalid pricing block in turnaround "+id, diags)
		}

		kind, err := requireString(attrs, "kind", id)
		if err != nil {
			return err
		}
		t.Pricing.Kind = catalog.TurnaroundPricingKind(kind)
		if t.Pricing.Multiplier, err = optionalDecimal(attrs, "multiplier", id); err != nil {
			return err
		}
		if t.Pricing.Amount, err = optionalDecimal(attrs, "amount", id); err != nil {
			return err
		}
		havePricing = true
	}

	if !havePricing {
		return errors.Parsing("turnaround "+id+" has no pricing block", nil)
	}

	cat.Turnarounds = append(cat.Turnarounds, t)
	return nil
}

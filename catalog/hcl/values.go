// Package hcl - Safe cty value conversion
// Catalog values are never blindly passed through: unknown and null
// values are rejected with a parsing error naming the attribute.
package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"printcost/internal/errors"
)

func evalAttr(attrs hcl.Attributes, name, blockID string) (cty.Value, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return cty.NilVal, false, nil
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, errors.Parsing("failed to evaluate "+name+" in "+blockID, diags)
	}
	if !val.IsKnown() || val.IsNull() {
		return cty.NilVal, false, errors.Parsing("attribute "+name+" in "+blockID+" has no usable value", nil)
	}
	return val, true, nil
}

func requireString(attrs hcl.Attributes, name, blockID string) (string, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Parsing("missing required attribute "+name+" in "+blockID, nil)
	}
	if val.Type() != cty.String {
		return "", errors.Parsing("attribute "+name+" in "+blockID+" must be a string", nil)
	}
	return val.AsString(), nil
}

func optionalString(attrs hcl.Attributes, name, blockID string) (string, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil || !ok {
		return "", err
	}
	if val.Type() != cty.String {
		return "", errors.Parsing("attribute "+name+" in "+blockID+" must be a string", nil)
	}
	return val.AsString(), nil
}

func ctyDecimal(val cty.Value, name, blockID string) (decimal.Decimal, error) {
	if val.Type() != cty.Number {
		return decimal.Zero, errors.Parsing("attribute "+name+" in "+blockID+" must be a number", nil)
	}
	d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Parsing("attribute "+name+" in "+blockID+" is not a valid decimal", err)
	}
	return d, nil
}

func requireDecimal(attrs hcl.Attributes, name, blockID string) (decimal.Decimal, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, errors.Parsing("missing required attribute "+name+" in "+blockID, nil)
	}
	return ctyDecimal(val, name, blockID)
}

func optionalDecimal(attrs hcl.Attributes, name, blockID string) (decimal.Decimal, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil || !ok {
		return decimal.Zero, err
	}
	return ctyDecimal(val, name, blockID)
}

func optionalInt(attrs hcl.Attributes, name, blockID string, def int) (int, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	d, err := ctyDecimal(val, name, blockID)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

func optionalBool(attrs hcl.Attributes, name, blockID string) (bool, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil || !ok {
		return false, err
	}
	if val.Type() != cty.Bool {
		return false, errors.Parsing("attribute "+name+" in "+blockID+" must be a bool", nil)
	}
	return val.True(), nil
}

func optionalStringList(attrs hcl.Attributes, name, blockID string) ([]string, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil || !ok {
		return nil, err
	}
	if !val.CanIterateElements() {
		return nil, errors.Parsing("attribute "+name+" in "+blockID+" must be a list of strings", nil)
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String || !elem.IsKnown() || elem.IsNull() {
			return nil, errors.Parsing("attribute "+name+" in "+blockID+" must contain only strings", nil)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

func optionalDecimalMap(attrs hcl.Attributes, name, blockID string) (map[string]decimal.Decimal, error) {
	val, ok, err := evalAttr(attrs, name, blockID)
	if err != nil || !ok {
		return nil, err
	}
	if !val.CanIterateElements() {
		return nil, errors.Parsing("attribute "+name+" in "+blockID+" must be a map of numbers", nil)
	}

	out := make(map[string]decimal.Decimal)
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		if key.Type() != cty.String {
			return nil, errors.Parsing("attribute "+name+" in "+blockID+" must be keyed by strings", nil)
		}
		d, err := ctyDecimal(elem, name, blockID)
		if err != nil {
			return nil, err
		}
		out[key.AsString()] = d
	}
	return out, nil
}

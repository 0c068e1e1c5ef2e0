package rewrite

import (
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
)

// Conversion converts one type. It returns (nil, nil) when it does not handle t, so
// the next conversion is tried, and an error when t cannot be converted at all.
// An empty non-nil result drops the type.
type Conversion func(t ir.Type) ([]ir.Type, error)

// TypeConverter maps source types to target types, possibly 1:N.
//
// Conversions are tried in registration order; the first one handling a type wins.
// A type no conversion handles is a conversion failure.
type TypeConverter struct {
	conversions []Conversion
}

// NewTypeConverter creates a converter with the given conversions.
func NewTypeConverter(conversions ...Conversion) *TypeConverter {
	return &TypeConverter{conversions: conversions}
}

// AddConversion appends a conversion.
func (c *TypeConverter) AddConversion(fn Conversion) {
	c.conversions = append(c.conversions, fn)
}

// Identity is a Conversion keeping every type as is. Register it last.
func Identity(t ir.Type) ([]ir.Type, error) {
	return []ir.Type{t}, nil
}

// Convert converts t.
func (c *TypeConverter) Convert(t ir.Type) ([]ir.Type, error) {
	for _, fn := range c.conversions {
		out, err := fn(t)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return out, nil
		}
	}
	return nil, errors.UnsupportedType(errors.PhaseConvert, t.String(), "no conversion for type")
}

// ConvertType converts t to exactly one type.
func (c *TypeConverter) ConvertType(t ir.Type) (ir.Type, error) {
	out, err := c.Convert(t)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, errors.UnsupportedType(errors.PhaseConvert, t.String(), "expected a 1:1 conversion")
	}
	return out[0], nil
}

// ConvertTypes converts every type of ts and flattens the results.
func (c *TypeConverter) ConvertTypes(ts []ir.Type) ([]ir.Type, error) {
	var out []ir.Type
	for _, t := range ts {
		conv, err := c.Convert(t)
		if err != nil {
			return nil, err
		}
		out = append(out, conv...)
	}
	return out, nil
}

// ConvertTypeGroups converts every type of ts keeping one group per input type.
func (c *TypeConverter) ConvertTypeGroups(ts []ir.Type) ([][]ir.Type, error) {
	groups := make([][]ir.Type, len(ts))
	for i, t := range ts {
		conv, err := c.Convert(t)
		if err != nil {
			return nil, err
		}
		groups[i] = conv
	}
	return groups, nil
}

// ConvertSignature converts the inputs and results of sig.
func (c *TypeConverter) ConvertSignature(sig ir.FunctionType) (ir.FunctionType, error) {
	inputs, err := c.ConvertTypes(sig.Inputs)
	if err != nil {
		return ir.FunctionType{}, err
	}
	results, err := c.ConvertTypes(sig.Results)
	if err != nil {
		return ir.FunctionType{}, err
	}
	return ir.FunctionType{Inputs: inputs, Results: results}, nil
}

// IsLegalType reports whether t converts to itself.
func (c *TypeConverter) IsLegalType(t ir.Type) bool {
	out, err := c.Convert(t)
	return err == nil && len(out) == 1 && ir.TypesEqual(out[0], t)
}

// AreLegalTypes reports whether every type of ts is legal.
func (c *TypeConverter) AreLegalTypes(ts []ir.Type) bool {
	for _, t := range ts {
		if !c.IsLegalType(t) {
			return false
		}
	}
	return true
}

// IsLegal reports whether every operand and result type of op is legal.
func (c *TypeConverter) IsLegal(op *ir.Operation) bool {
	return c.AreLegalTypes(op.OperandTypes()) && c.AreLegalTypes(op.ResultTypes())
}

// IsSignatureLegal reports whether every input and result type of sig is legal.
func (c *TypeConverter) IsSignatureLegal(sig ir.FunctionType) bool {
	return c.AreLegalTypes(sig.Inputs) && c.AreLegalTypes(sig.Results)
}

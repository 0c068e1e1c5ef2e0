package parser

import (
	"strconv"
	"strings"

	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/token"
)

var scalarTypes = map[string]ir.Type{
	"index":  ir.Index,
	"f16":    ir.F16,
	"bf16":   ir.BF16,
	"f32":    ir.F32,
	"f64":    ir.F64,
	"chain":  ir.Chain,
	"stream": ir.Stream,
	"token":  ir.AsyncToken,
	"buffer": ir.BufferType{},
}

func (p *Parser) parseType() (ir.Type, error) {
	t := p.peek()
	if t == nil {
		return nil, errors.Syntax(p.line(), "unexpected end of input, expected type")
	}
	if t.Type == token.Ident {
		p.next()
		return parseScalarType(t.Value, t.Line)
	}
	if t.Type != token.LParen {
		return nil, errors.Syntax(t.Line, "expected type, got %q", t.Value)
	}
	p.next()
	head, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var typ ir.Type
	switch head.Value {
	case "memref", "buffer":
		shape, elem, err := p.parseShaped()
		if err != nil {
			return nil, err
		}
		if head.Value == "memref" {
			typ = ir.MemRefType{Elem: elem, Shape: shape}
		} else {
			typ = ir.BufferType{Elem: elem, Shape: shape}
		}
	case "complex":
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = ir.ComplexType{Elem: elem}
	case "opaque":
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		typ = ir.OpaqueType{Name: name.Value}
	case "fn":
		inputs, err := p.parseTypeList()
		if err != nil {
			return nil, err
		}
		results, err := p.parseTypeList()
		if err != nil {
			return nil, err
		}
		typ = ir.FunctionType{Inputs: inputs, Results: results}
	default:
		return nil, errors.UnknownType(head.Line, head.Value)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return typ, nil
}

func parseScalarType(name string, line int) (ir.Type, error) {
	if t, ok := scalarTypes[name]; ok {
		return t, nil
	}
	unsigned := strings.HasPrefix(name, "ui")
	digits := strings.TrimPrefix(strings.TrimPrefix(name, "u"), "i")
	if strings.HasPrefix(name, "i") || unsigned {
		if w, err := strconv.Atoi(digits); err == nil && w > 0 {
			return ir.IntType{Width: w, Unsigned: unsigned}, nil
		}
	}
	return nil, errors.UnknownType(line, name)
}

// parseShaped reads "d... elem )" without the closing paren.
func (p *Parser) parseShaped() ([]int, ir.Type, error) {
	var shape []int
	for {
		t := p.peek()
		if t == nil {
			return nil, nil, errors.Syntax(p.line(), "unexpected end of input in shaped type")
		}
		switch {
		case t.Type == token.Number:
			d, err := p.parseInt()
			if err != nil {
				return nil, nil, err
			}
			if d < 0 {
				return nil, nil, errors.New(errors.PhaseParse, errors.KindSyntax).
					Line(t.Line).
					Value(d).
					Detail("negative dimension %d", d).
					Build()
			}
			shape = append(shape, int(d))
		case t.Type == token.Ident && t.Value == "?":
			p.next()
			shape = append(shape, ir.Dynamic)
		default:
			elem, err := p.parseType()
			if err != nil {
				return nil, nil, err
			}
			return shape, elem, nil
		}
	}
}

// parseTypeList reads "( T... )".
func (p *Parser) parseTypeList() ([]ir.Type, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var out []ir.Type
	for {
		t := p.peek()
		if t == nil {
			return nil, errors.Syntax(p.line(), "unexpected end of input in type list")
		}
		if t.Type == token.RParen {
			p.next()
			return out, nil
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, typ)
	}
}

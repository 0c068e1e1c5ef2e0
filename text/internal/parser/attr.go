package parser

import (
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/token"
)

// parseAttr reads (attr name value).
func (p *Parser) parseAttr() (ir.NamedAttribute, error) {
	if err := p.expectKeyword("attr"); err != nil {
		return ir.NamedAttribute{}, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return ir.NamedAttribute{}, err
	}
	value, err := p.parseAttrValue()
	if err != nil {
		return ir.NamedAttribute{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ir.NamedAttribute{}, err
	}
	return ir.NamedAttribute{Name: name.Value, Value: value}, nil
}

func (p *Parser) parseAttrValue() (ir.Attribute, error) {
	t := p.peek()
	if t == nil {
		return nil, errors.Syntax(p.line(), "unexpected end of input, expected attribute value")
	}
	switch t.Type {
	case token.Number:
		v, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		return ir.IntAttr{Value: v}, nil
	case token.String:
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return ir.StringAttr{Value: s}, nil
	}

	switch {
	case p.peekKeyword("ints"):
		p.next()
		p.next()
		var values []int64
		for {
			n := p.peek()
			if n != nil && n.Type == token.RParen {
				p.next()
				return ir.IntsAttr{Values: values}, nil
			}
			v, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	case p.peekKeyword("type"):
		p.next()
		p.next()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return ir.TypeAttr{Type: typ}, nil
	}
	return nil, errors.Syntax(t.Line, "expected attribute value, got %q", t.Value)
}

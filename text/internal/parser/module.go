package parser

import (
	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/token"
)

func (p *Parser) parseModule() (*ir.Operation, error) {
	if err := p.expectKeyword("module"); err != nil {
		return nil, err
	}
	var attrs ir.Attrs
	body := ir.NewBlock()
	for {
		t := p.peek()
		if t == nil {
			return nil, errors.Syntax(p.line(), "unexpected end of input in module")
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		switch {
		case p.peekKeyword("func"):
			fn, err := p.parseFunc()
			if err != nil {
				return nil, err
			}
			body.Append(fn)
		case p.peekKeyword("op"):
			p.values = make(map[string]*ir.Value)
			op, err := p.parseOp()
			if err != nil {
				return nil, err
			}
			body.Append(op)
		case p.peekKeyword("attr"):
			na, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, na)
		default:
			return nil, errors.Syntax(t.Line, "expected func, op or attr in module, got %q", t.Value)
		}
	}
	m := ir.NewOperation(dialect.Module, nil, nil, attrs, 1)
	m.Region(0).AddBlock(body)
	return m, nil
}

// parseFunc reads (func "name" (param $x T)... (result T...)? (attr ...)... op...).
func (p *Parser) parseFunc() (*ir.Operation, error) {
	if err := p.expectKeyword("func"); err != nil {
		return nil, err
	}
	name, err := p.parseString()
	if err != nil {
		return nil, err
	}
	p.values = make(map[string]*ir.Value)

	body := ir.NewBlock()
	var (
		inputs  []ir.Type
		results []ir.Type
		extra   ir.Attrs
	)
	for p.peekKeyword("param") {
		p.next()
		p.next()
		argName, line, err := p.parseValueName()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		inputs = append(inputs, typ)
		if err := p.define(argName, line, body.AddArgument(typ)); err != nil {
			return nil, err
		}
	}
	if p.peekKeyword("result") {
		p.next()
		p.next()
		for {
			t := p.peek()
			if t == nil {
				return nil, errors.Syntax(p.line(), "unexpected end of input in result list")
			}
			if t.Type == token.RParen {
				p.next()
				break
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			results = append(results, typ)
		}
	}
	for p.peekKeyword("attr") {
		na, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		extra = append(extra, na)
	}
	if err := p.parseOps(body); err != nil {
		return nil, err
	}

	attrs := ir.Attrs{
		{Name: dialect.AttrSymName, Value: ir.StringAttr{Value: name}},
		{Name: dialect.AttrFunctionType, Value: ir.TypeAttr{Type: ir.FunctionType{Inputs: inputs, Results: results}}},
	}
	attrs = append(attrs, extra...)
	fn := ir.NewOperation(dialect.Func, nil, nil, attrs, 1)
	fn.Region(0).AddBlock(body)
	return fn, nil
}

// parseOps reads ops into b up to and including the closing paren of the enclosing form.
func (p *Parser) parseOps(b *ir.Block) error {
	for {
		t := p.peek()
		if t == nil {
			return errors.Syntax(p.line(), "unexpected end of input")
		}
		if t.Type == token.RParen {
			p.next()
			return nil
		}
		if !p.peekKeyword("op") {
			return errors.Syntax(t.Line, "expected op, got %q", t.Value)
		}
		op, err := p.parseOp()
		if err != nil {
			return err
		}
		b.Append(op)
	}
}

type resultDecl struct {
	name string
	typ  ir.Type
	line int
}

// parseOp reads (op "kind" clause...) where clause is operands, attr, result or region.
func (p *Parser) parseOp() (*ir.Operation, error) {
	if err := p.expectKeyword("op"); err != nil {
		return nil, err
	}
	line := p.line()
	kind, err := p.parseString()
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errors.Syntax(line, "empty op kind")
	}

	var (
		operands []*ir.Value
		attrs    ir.Attrs
		results  []resultDecl
		regions  [][]*ir.Block
	)

	for {
		t := p.peek()
		if t == nil {
			return nil, errors.Syntax(p.line(), "unexpected end of input in op %q", kind)
		}
		if t.Type == token.RParen {
			p.next()
			break
		}
		switch {
		case p.peekKeyword("operands"):
			p.next()
			p.next()
			for {
				t := p.peek()
				if t != nil && t.Type == token.RParen {
					p.next()
					break
				}
				name, l, err := p.parseValueName()
				if err != nil {
					return nil, err
				}
				v, err := p.lookup(name, l)
				if err != nil {
					return nil, err
				}
				operands = append(operands, v)
			}
		case p.peekKeyword("attr"):
			na, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, na)
		case p.peekKeyword("result"):
			p.next()
			p.next()
			decl := resultDecl{line: p.line()}
			if n := p.peek(); n != nil && n.Type == token.Ident && len(n.Value) > 1 && n.Value[0] == '$' {
				decl.name, decl.line, err = p.parseValueName()
				if err != nil {
					return nil, err
				}
			}
			decl.typ, err = p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			results = append(results, decl)
		case p.peekKeyword("region"):
			blocks, err := p.parseRegion()
			if err != nil {
				return nil, err
			}
			regions = append(regions, blocks)
		default:
			return nil, errors.Syntax(t.Line, "expected operands, attr, result or region in op %q, got %q", kind, t.Value)
		}
	}

	types := make([]ir.Type, len(results))
	for i, r := range results {
		types[i] = r.typ
	}
	op := ir.NewOperation(ir.Kind(kind), operands, types, attrs, len(regions))
	for i, blocks := range regions {
		for _, b := range blocks {
			op.Region(i).AddBlock(b)
		}
	}
	for i, r := range results {
		if err := p.define(r.name, r.line, op.Result(i)); err != nil {
			return nil, err
		}
	}
	return op, nil
}

// parseRegion reads (region (block ...)...).
func (p *Parser) parseRegion() ([]*ir.Block, error) {
	if err := p.expectKeyword("region"); err != nil {
		return nil, err
	}
	var blocks []*ir.Block
	for {
		t := p.peek()
		if t == nil {
			return nil, errors.Syntax(p.line(), "unexpected end of input in region")
		}
		if t.Type == token.RParen {
			p.next()
			return blocks, nil
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// parseBlock reads (block (arg $x T)... op...).
func (p *Parser) parseBlock() (*ir.Block, error) {
	if err := p.expectKeyword("block"); err != nil {
		return nil, err
	}
	b := ir.NewBlock()
	for p.peekKeyword("arg") {
		p.next()
		p.next()
		name, line, err := p.parseValueName()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		if err := p.define(name, line, b.AddArgument(typ)); err != nil {
			return nil, err
		}
	}
	if err := p.parseOps(b); err != nil {
		return nil, err
	}
	return b, nil
}

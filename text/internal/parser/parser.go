package parser

import (
	"strconv"
	"strings"

	"github.com/wippyai/gpu-async/errors"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/text/internal/token"
)

// Parser builds IR from the tokens of one module.
//
// Value names are scoped per function: a name is visible from its definition to the
// end of the function, whatever block it is defined in.
type Parser struct {
	values map[string]*ir.Value
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) Parse() (*ir.Operation, error) {
	m, err := p.parseModule()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, errors.Syntax(t.Line, "unexpected %q after module", t.Value)
	}
	return m, nil
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// peekKeyword reports whether the next tokens are "(" keyword.
func (p *Parser) peekKeyword(keyword string) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos].Type == token.LParen &&
		p.tokens[p.pos+1].Type == token.Ident &&
		p.tokens[p.pos+1].Value == keyword
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) line() int {
	if t := p.peek(); t != nil {
		return t.Line
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].Line
	}
	return 1
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.line(), "unexpected end of input, expected %v", typ)
	}
	if t.Type != typ {
		return nil, errors.Syntax(t.Line, "expected %v, got %q", typ, t.Value)
	}
	return t, nil
}

func (p *Parser) expectKeyword(keyword string) error {
	if _, err := p.expect(token.LParen); err != nil {
		return err
	}
	t, err := p.expect(token.Ident)
	if err != nil {
		return err
	}
	if t.Value != keyword {
		return errors.Syntax(t.Line, "expected %q, got %q", keyword, t.Value)
	}
	return nil
}

func (p *Parser) parseString() (string, error) {
	t, err := p.expect(token.String)
	if err != nil {
		return "", err
	}
	s, err := strconv.Unquote(`"` + t.Value + `"`)
	if err != nil {
		return "", errors.Syntax(t.Line, "invalid string %q", t.Value)
	}
	return s, nil
}

func (p *Parser) parseInt() (int64, error) {
	t, err := p.expect(token.Number)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(t.Value, "_", ""), 0, 64)
	if err != nil {
		return 0, errors.Syntax(t.Line, "invalid number %s", t.Value)
	}
	return v, nil
}

// parseValueName reads a $name token.
func (p *Parser) parseValueName() (string, int, error) {
	t, err := p.expect(token.Ident)
	if err != nil {
		return "", 0, err
	}
	if !strings.HasPrefix(t.Value, "$") || len(t.Value) < 2 {
		return "", 0, errors.Syntax(t.Line, "expected value name, got %q", t.Value)
	}
	return t.Value[1:], t.Line, nil
}

func (p *Parser) define(name string, line int, v *ir.Value) error {
	if name == "" {
		return nil
	}
	if _, ok := p.values[name]; ok {
		return errors.New(errors.PhaseParse, errors.KindSyntax).
			Line(line).
			Value("$"+name).
			Detail("value $%s redefined", name).
			Build()
	}
	v.SetName(name)
	p.values[name] = v
	return nil
}

func (p *Parser) lookup(name string, line int) (*ir.Value, error) {
	v, ok := p.values[name]
	if !ok {
		return nil, errors.UnknownValue(line, "$"+name)
	}
	return v, nil
}

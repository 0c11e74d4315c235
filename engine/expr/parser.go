package expr

import "fmt"

// MaxNesting is the maximum depth of nested parentheses Parse accepts.
const MaxNesting = 512

// Parse parses an expression. It returns either a complete syntax tree or a
// *SyntaxError, never both.
func Parse(text string) (Expression, error) {
	p := &parser{tokens: scan(text)}
	e, err := p.expression()
	if err == nil && p.peek().kind != tokEOF {
		err = unexpected(p.peek(), "operator", "end of input")
	}
	if err != nil {
		tracer().Debugf("parse %q: %v", text, err)
		return nil, err
	}
	return e, nil
}

// parser is a recursive descent parser with one level of function per
// precedence tier.
type parser struct {
	tokens []token
	pos    int
	depth  int // of open parentheses
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// binaryOp checks if the next token is one of ops and consumes it.
func (p *parser) binaryOp(ops ...Op) (Op, bool) {
	tok := p.peek()
	if tok.kind != tokOp {
		return 0, false
	}
	for _, op := range ops {
		if tok.op == op {
			p.next()
			return op, true
		}
	}
	return 0, false
}

// tier parses a left-associative chain of operands joined by ops.
func (p *parser) tier(operand func() (Expression, *SyntaxError), ops ...Op) (Expression, *SyntaxError) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.binaryOp(ops...)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) expression() (Expression, *SyntaxError) {
	return p.tier(p.add, Concat)
}

func (p *parser) add() (Expression, *SyntaxError) {
	return p.tier(p.xor, Add, Sub)
}

func (p *parser) xor() (Expression, *SyntaxError) {
	return p.tier(p.andOr, Xor)
}

func (p *parser) andOr() (Expression, *SyntaxError) {
	return p.tier(p.primary, And, Or)
}

func (p *parser) primary() (Expression, *SyntaxError) {
	tok := p.next()
	switch tok.kind {
	case tokChar:
		return &Char{Text: tok.text, Offset: tok.offset}, nil
	case tokLParen:
		if p.depth++; p.depth > MaxNesting {
			return nil, &SyntaxError{
				Offset:   tok.offset,
				Column:   tok.column,
				Found:    "'(' nested too deeply",
				Expected: []string{fmt.Sprintf("at most %d nested parentheses", MaxNesting)},
			}
		}
		inner, err := p.expression()
		p.depth--
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, unexpected(closing, "operator", "')'")
		}
		return &Paren{Inner: inner, Offset: tok.offset}, nil
	}
	return nil, unexpected(tok, "character", "'('")
}

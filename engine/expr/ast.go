package expr

// Op is a binary operator of the expression language.
type Op int8

// Operators, in no particular order of precedence.
const (
	Concat Op = iota // ||
	Add              // +
	Sub              // -
	And              // &
	Or               // |
	Xor              // ^
)

var opNames = [...]string{"concat", "add", "sub", "and", "or", "xor"}
var opSymbols = [...]string{"||", "+", "-", "&", "|", "^"}

// String returns the operator name as used by Repr, e.g. "sub".
func (op Op) String() string {
	if op < Concat || op > Xor {
		return "op?"
	}
	return opNames[op]
}

// Symbol returns the source spelling of an operator, e.g. "-".
func (op Op) Symbol() string {
	if op < Concat || op > Xor {
		return "?"
	}
	return opSymbols[op]
}

// Precedence returns the binding strength of an operator. Higher values
// bind tighter.
func (op Op) Precedence() int {
	switch op {
	case Concat:
		return 1
	case Add, Sub:
		return 2
	case Xor:
		return 3
	case And, Or:
		return 4
	}
	return 0
}

// Expression is a node of a syntax tree. It is one of *Char, *Paren or *Binary.
// Trees are not modified after parsing.
type Expression interface {
	Pos() int // byte offset in the source text
	isExpression()
}

// Char is a character literal, i.e. a single grapheme cluster.
type Char struct {
	Text   string
	Offset int
}

// Paren is a parenthesized sub-expression.
type Paren struct {
	Inner  Expression
	Offset int // position of '('
}

// Binary is the application of a binary operator.
type Binary struct {
	Op    Op
	Left  Expression
	Right Expression
}

func (c *Char) Pos() int   { return c.Offset }
func (p *Paren) Pos() int  { return p.Offset }
func (b *Binary) Pos() int { return b.Left.Pos() }

func (*Char) isExpression()   {}
func (*Paren) isExpression()  {}
func (*Binary) isExpression() {}

// Walk traverses a tree in pre-order, left before right. If f returns false,
// children of the current node are skipped.
func Walk(e Expression, f func(Expression) bool) {
	if e == nil || !f(e) {
		return
	}
	switch n := e.(type) {
	case *Paren:
		Walk(n.Inner, f)
	case *Binary:
		Walk(n.Left, f)
		Walk(n.Right, f)
	}
}

// Leaves returns the character literals of a tree in pre-order.
func Leaves(e Expression) []*Char {
	var leaves []*Char
	Walk(e, func(node Expression) bool {
		if c, ok := node.(*Char); ok {
			leaves = append(leaves, c)
		}
		return true
	})
	return leaves
}

// Equivalent reports whether two trees have the same structure, disregarding
// parentheses and source positions.
func Equivalent(a, b Expression) bool {
	a, b = stripParens(a), stripParens(b)
	switch x := a.(type) {
	case *Char:
		y, ok := b.(*Char)
		return ok && x.Text == y.Text
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equivalent(x.Left, y.Left) && Equivalent(x.Right, y.Right)
	}
	return a == nil && b == nil
}

func stripParens(e Expression) Expression {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.Inner
	}
}

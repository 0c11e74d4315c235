package expr

import (
	"strings"
)

// Repr returns the canonical prefix-call form of an expression, e.g.
//
//     concat(sub('G','H'), xor('J','H'))
//
// Parentheses are not represented. Arguments are separated by "," if both
// are character literals and by ", " otherwise.
func Repr(e Expression) string {
	var sb strings.Builder
	repr(&sb, e)
	return sb.String()
}

func repr(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Char:
		sb.WriteString(quote(n.Text))
	case *Paren:
		repr(sb, n.Inner)
	case *Binary:
		sb.WriteString(n.Op.String())
		sb.WriteByte('(')
		repr(sb, n.Left)
		if isChar(n.Left) && isChar(n.Right) {
			sb.WriteByte(',')
		} else {
			sb.WriteString(", ")
		}
		repr(sb, n.Right)
		sb.WriteByte(')')
	}
}

func isChar(e Expression) bool {
	_, ok := stripParens(e).(*Char)
	return ok
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		if r == '\'' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// Pretty re-emits an expression in source syntax, with operators surrounded
// by spaces, e.g. "(G - H) || J ^ H". Parenthesized sub-expressions keep their
// parentheses; additional parentheses are inserted where the tree shape would
// otherwise not survive re-parsing.
func Pretty(e Expression) string {
	var sb strings.Builder
	pretty(&sb, e)
	return sb.String()
}

func pretty(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Char:
		sb.WriteString(n.Text)
	case *Paren:
		parenthesize(sb, n.Inner)
	case *Binary:
		prec := n.Op.Precedence()
		operand(sb, n.Left, prec, false)
		sb.WriteByte(' ')
		sb.WriteString(n.Op.Symbol())
		sb.WriteByte(' ')
		operand(sb, n.Right, prec, true)
	}
}

// operand prints an operand of a binary operator with precedence prec.
// All operators are left-associative, so a right operand of equal precedence
// needs parentheses.
func operand(sb *strings.Builder, e Expression, prec int, right bool) {
	b, ok := e.(*Binary)
	if ok && (b.Op.Precedence() < prec || right && b.Op.Precedence() == prec) {
		parenthesize(sb, e)
		return
	}
	pretty(sb, e)
}

// parenthesize prints e in parentheses. A literal which would melt into a
// grapheme with an adjacent parenthesis is separated by a space.
func parenthesize(sb *strings.Builder, e Expression) {
	sb.WriteByte('(')
	if glued("(", edge(e, true)) {
		sb.WriteByte(' ')
	}
	pretty(sb, e)
	if glued(edge(e, false), ")") {
		sb.WriteByte(' ')
	}
	sb.WriteByte(')')
}

// edge returns the leftmost or rightmost text printed for e.
func edge(e Expression, left bool) string {
	for {
		switch n := e.(type) {
		case *Char:
			return n.Text
		case *Paren:
			if left {
				return "("
			}
			return ")"
		case *Binary:
			if left {
				e = n.Left
			} else {
				e = n.Right
			}
		default:
			return ""
		}
	}
}

// glued is true if a and b share a grapheme when written next to each other.
func glued(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return len(graphemes(a+b)) < len(graphemes(a))+len(graphemes(b))
}

// Polish returns an expression in prefix notation with operator symbols,
// e.g. "(|| (- G H) (^ J H))".
func Polish(e Expression) string {
	var sb strings.Builder
	polish(&sb, e)
	return sb.String()
}

func polish(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Char:
		sb.WriteString(n.Text)
	case *Paren:
		polish(sb, n.Inner)
	case *Binary:
		sb.WriteByte('(')
		sb.WriteString(n.Op.Symbol())
		sb.WriteByte(' ')
		polish(sb, n.Left)
		sb.WriteByte(' ')
		polish(sb, n.Right)
		sb.WriteByte(')')
	}
}

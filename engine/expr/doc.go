/*
Package expr implements the expression language for letter arithmetic.

An expression combines single characters by binary operators:

   A || B      concatenation
   A + B       union (source-over)
   A - B       difference (destination-out)
   A & B       intersection (source-in)
   A | B       union, alias of +
   A ^ B       symmetric difference (xor)

Parentheses group sub-expressions. Concatenation binds loosest, followed by
addition and subtraction, then xor, then and/or. All operators are
left-associative and whitespace between tokens is insignificant.

A character literal is a single extended grapheme cluster (UAX #29), which
is not one of the structural symbols and not whitespace. Segmentation is
done with package uax; literals are normalized to NFC.

Parse produces a syntax tree or a *SyntaxError, never a partial tree.
Repr, Pretty and Polish project a tree to text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lettermath.expr'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.expr")
}

// GrammarSource is the grammar of the expression language, suitable for
// display to users.
const GrammarSource = `Expression := Concat
Concat     := Add ( '||' Add )*
Add        := Xor ( ( '+' | '-' ) Xor )*
Xor        := AndOr ( '^' AndOr )*
AndOr      := Primary ( ( '&' | '|' ) Primary )*
Primary    := '(' Expression ')' | Char
Char       := any grapheme except ( ) + - & | ^ and whitespace`

// DefaultExpression is an expression to show if a user has not yet entered one.
const DefaultExpression = "A + B || 8 & 0 || G - K"

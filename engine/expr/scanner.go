package expr

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/unicode/norm"
)

type tokenKind int8

const (
	tokEOF tokenKind = iota
	tokChar
	tokLParen
	tokRParen
	tokOp
)

type token struct {
	kind   tokenKind
	op     Op     // if kind == tokOp
	text   string // literal text, NFC
	offset int    // byte offset in source
	column int    // 1-based, counted in graphemes
}

func (tok token) String() string {
	switch tok.kind {
	case tokEOF:
		return "end of input"
	case tokChar:
		return fmt.Sprintf("character %s", quote(tok.text))
	case tokOp:
		return fmt.Sprintf("'%s'", tok.op.Symbol())
	}
	return fmt.Sprintf("'%s'", tok.text)
}

var setupClasses sync.Once

// cluster is a grapheme of the source text.
type cluster struct {
	text   string
	offset int
}

// graphemes splits a text into extended grapheme clusters.
func graphemes(text string) []cluster {
	setupClasses.Do(grapheme.SetupGraphemeClasses)
	onGraphemes := grapheme.NewBreaker(1)
	seg := segment.NewSegmenter(onGraphemes)
	seg.Init(strings.NewReader(text))
	clusters := make([]cluster, 0, len(text))
	pos := 0
	for seg.Next() {
		g := string(seg.Bytes())
		clusters = append(clusters, cluster{text: g, offset: pos})
		pos += len(g)
	}
	return clusters
}

func isWhitespace(g string) bool {
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// scan tokenizes a source text. It never fails: every grapheme is either
// whitespace, a structural symbol or a character literal. The token list is
// terminated by a tokEOF.
//
// A grapheme may glue whitespace to a combining mark (" \u0301") or a
// prepended character to whitespace. Literals never start or end with
// whitespace; it is trimmed off.
func scan(text string) []token {
	clusters := graphemes(text)
	tokens := make([]token, 0, len(clusters)+1)
	for i := 0; i < len(clusters); i++ {
		c := clusters[i]
		tok := token{text: c.text, offset: c.offset, column: i + 1}
		switch c.text {
		case "(":
			tok.kind = tokLParen
		case ")":
			tok.kind = tokRParen
		case "+":
			tok.kind, tok.op = tokOp, Add
		case "-":
			tok.kind, tok.op = tokOp, Sub
		case "&":
			tok.kind, tok.op = tokOp, And
		case "^":
			tok.kind, tok.op = tokOp, Xor
		case "|":
			tok.kind, tok.op = tokOp, Or
			if i+1 < len(clusters) && clusters[i+1].text == "|" {
				tok.op, tok.text = Concat, "||"
				i++
			}
		default:
			if isWhitespace(c.text) {
				continue
			}
			tok.kind = tokChar
			lit := strings.TrimLeftFunc(c.text, unicode.IsSpace)
			tok.offset += len(c.text) - len(lit)
			lit = strings.TrimRightFunc(lit, unicode.IsSpace)
			tok.text = norm.NFC.String(lit)
		}
		tokens = append(tokens, tok)
	}
	tokens = append(tokens, token{
		kind:   tokEOF,
		offset: len(text),
		column: len(clusters) + 1,
	})
	tracer().Debugf("scanned %d tokens from %d graphemes", len(tokens)-1, len(clusters))
	return tokens
}

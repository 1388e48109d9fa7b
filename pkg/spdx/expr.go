package spdx

import (
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Evaluate interprets an SPDX license expression and returns a combined
// verdict. Each base identifier is resolved through lookup; OR picks
// the most permissive branch, AND the most restrictive. WITH exception
// clauses are recognized and discarded. Legacy "/"-separated lists are
// treated as OR.
//
// Malformed input degrades instead of failing: a missing operand
// evaluates to fallback and an unmatched ")" ends the expression early.
func Evaluate(expr string, lookup func(string) deps.Verdict, fallback deps.Verdict) deps.Verdict {
	p := &parser{
		tokens:   tokenize(expr),
		lookup:   lookup,
		fallback: fallback,
	}
	return p.orExpr()
}

type parser struct {
	tokens   []string
	pos      int
	lookup   func(string) deps.Verdict
	fallback deps.Verdict
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// orExpr := andExpr ( "OR" andExpr )*
func (p *parser) orExpr() deps.Verdict {
	verdict := p.andExpr()
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "OR") {
			return verdict
		}
		p.pos++
		verdict = verdict.Or(p.andExpr())
	}
}

// andExpr := atom ( "AND" atom )*
func (p *parser) andExpr() deps.Verdict {
	verdict := p.atom()
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "AND") {
			return verdict
		}
		p.pos++
		verdict = verdict.And(p.atom())
	}
}

// atom := "(" orExpr ")" | identifier ( "WITH" identifier )?
func (p *parser) atom() deps.Verdict {
	tok, ok := p.next()
	if !ok {
		return p.fallback
	}
	switch tok {
	case "(":
		verdict := p.orExpr()
		if closing, ok := p.peek(); ok && closing == ")" {
			p.pos++
		}
		return verdict
	case ")":
		// Unmatched close; back up so callers see end of expression.
		p.pos--
		return p.fallback
	}
	if strings.EqualFold(tok, "OR") || strings.EqualFold(tok, "AND") {
		// Operator where an operand was expected.
		p.pos--
		return p.fallback
	}
	// Exception clauses don't change the base license verdict.
	if with, ok := p.peek(); ok && strings.EqualFold(with, "WITH") {
		p.pos++
		p.next()
	}
	return p.lookup(Normalize(tok))
}

// tokenize splits an expression into identifiers, parentheses, and
// operator words. "/" is legacy OR syntax.
func tokenize(expr string) []string {
	expr = strings.ReplaceAll(expr, "/", " OR ")
	expr = strings.ReplaceAll(expr, "(", " ( ")
	expr = strings.ReplaceAll(expr, ")", " ) ")
	return strings.Fields(expr)
}

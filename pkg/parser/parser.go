// Package parser turns formula text into expression trees.
//
// Parsing runs in three stages: the dialect-aware lexer normalizes surface
// spellings into tokens, recognition walks the precedence grammar while
// emitting a postfix stack, and a single backward scan of that stack
// reassembles the nested tree.
//
// Grammar (precedence low to high; binary operators are left-associative
// except ^, which is right-associative):
//
//	equation   → lvalue ASSIGN comparison | comparison
//	lvalue     → identifier | array
//	comparison → expr [ '==' expr ]
//	expr       → term { ('+'|'-') term }
//	term       → factor { ('*'|'/') factor }
//	factor     → atom [ '^' factor ]
//	atom       → [ '-' ] ( constant | number | array | call | identifier | '(' expr ')' )
//	array      → identifier ARRAY_LPAR integer { ',' integer } ARRAY_RPAR
//	call       → identifier FUNC_LPAR expr { ',' expr } FUNC_RPAR
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/formulate/pkg/core"
	"github.com/leapstack-labs/formulate/pkg/dialect"
	"github.com/leapstack-labs/formulate/pkg/token"
)

// Parser parses single formulas for one dialect. It keeps mutable
// intermediate state (token buffer, postfix stack) and is not safe for
// concurrent use; give each goroutine its own instance.
type Parser struct {
	d        *dialect.Dialect
	funcName map[string]string // surface function spelling -> canonical name
	toks     []token.Token
	pos      int
	stack    []item
}

// New creates a parser bound to a dialect.
func New(d *dialect.Dialect) (*Parser, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Parser{d: d, funcName: invertFunctions(d)}, nil
}

// invertFunctions builds the surface -> canonical function-name map from
// the dialect's operator table. Canonical names that are not plain words
// (the power operator, the unary minus) are not function spellings and are
// skipped.
func invertFunctions(d *dialect.Dialect) map[string]string {
	m := make(map[string]string)
	for canon, surface := range d.Operators {
		if isIdentShaped(canon) {
			m[surface] = canon
		}
	}
	return m
}

// canonicalName maps a callee to its canonical form: the canonical name the
// operator table gives its surface spelling, lower case otherwise.
func (p *Parser) canonicalName(name string) string {
	if canon, ok := p.funcName[name]; ok {
		return canon
	}
	return strings.ToLower(name)
}

// ParseString parses a single formula. Empty or whitespace-only input
// yields (nil, nil).
func (p *Parser) ParseString(s string) (core.Expr, error) {
	s = p.d.Preprocess(s)
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	toks, err := lexAll(s, p.d)
	if err != nil {
		return nil, err
	}
	p.toks = toks
	p.pos = 0
	p.stack = p.stack[:0]

	if err := p.parseEquation(); err != nil {
		return nil, err
	}
	if p.cur().Type != token.EOF {
		return nil, p.errorf(errTrailingInput)
	}
	return reassemble(p.stack)
}

// ---------- token helpers ----------

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) next() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// checkLit reports whether the current token is punctuation with the given
// surface spelling.
func (p *Parser) checkLit(lit string) bool {
	tok := p.cur()
	return tok.Type == token.PUNCT && tok.Literal == strings.TrimSpace(lit)
}

func (p *Parser) matchLit(lit string) bool {
	if p.checkLit(lit) {
		p.pos++
		return true
	}
	// The lexer matches greedily, so nested function calls in a dialect with
	// doubled array brackets can end in one ]] token where the grammar needs
	// two ]. Split the token and consume the prefix.
	want := strings.TrimSpace(lit)
	tok := p.cur()
	if tok.Type == token.PUNCT && len(tok.Literal) > len(want) && strings.HasPrefix(tok.Literal, want) {
		rest := tok.Literal[len(want):]
		p.toks[p.pos].Literal = rest
		p.toks[p.pos].Pos.Offset += len(want)
		p.toks[p.pos].Pos.Column += len(want)
		return true
	}
	return false
}

func (p *Parser) expectLit(lit string) error {
	if p.matchLit(lit) {
		return nil
	}
	return p.errorf(errExpectedToken, strings.TrimSpace(lit), p.cur())
}

// isAssign reports whether the current token is one of the dialect's
// accepted assignment spellings. The == token doubles as an assignment form
// when the dialect lists it.
func (p *Parser) isAssign() bool {
	switch p.cur().Type {
	case token.ASSIGN:
		return true
	case token.EQ:
		for _, a := range p.d.Assign {
			if a == "==" {
				return true
			}
		}
	}
	return false
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.cur().Pos, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) push(it item) {
	p.stack = append(p.stack, it)
}

// ---------- recognition ----------

// parseEquation recognizes `lvalue ASSIGN comparison | comparison`. The
// assignment alternative is tried first and rolled back when no assignment
// token follows the lvalue.
func (p *Parser) parseEquation() error {
	if p.cur().Type == token.IDENT {
		savePos, saveStack := p.pos, len(p.stack)
		if ok := p.tryAssignment(); ok {
			return nil
		}
		p.pos, p.stack = savePos, p.stack[:saveStack]
	}
	return p.parseComparison()
}

// tryAssignment attempts the assignment production. It returns false (with
// parser state untouched by the caller's rollback) when the input is not an
// assignment; a malformed right-hand side still fails the whole parse via
// the comparison path. With an == spelling that path re-parses the right-hand
// side and fails at the same position; with other spellings it stops at the
// assignment token, which ParseString reports as trailing input.
func (p *Parser) tryAssignment() bool {
	name := p.next() // identifier

	if p.checkLit(p.d.ArrayLPar) {
		if err := p.parseArrayArgs(name.Literal); err != nil {
			return false
		}
	} else {
		p.push(atomItem(core.AtomIdent, name.Literal))
	}

	if !p.isAssign() {
		return false
	}
	p.pos++

	if err := p.parseComparison(); err != nil {
		return false
	}
	if p.cur().Type != token.EOF {
		return false
	}
	p.push(item{kind: itemBinary, val: core.OpAssign})
	return true
}

func (p *Parser) parseComparison() error {
	if err := p.parseExpr(); err != nil {
		return err
	}
	if p.cur().Type == token.EQ {
		p.pos++
		if err := p.parseExpr(); err != nil {
			return err
		}
		p.push(item{kind: itemBinary, val: core.OpEqual})
	}
	return nil
}

func (p *Parser) parseExpr() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for {
		var op string
		switch p.cur().Type {
		case token.PLUS:
			op = core.OpAdd
		case token.MINUS:
			op = core.OpSub
		default:
			return nil
		}
		p.pos++
		if err := p.parseTerm(); err != nil {
			return err
		}
		p.push(item{kind: itemBinary, val: op})
	}
}

func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for {
		var op string
		switch p.cur().Type {
		case token.STAR:
			op = core.OpMul
		case token.SLASH:
			op = core.OpDiv
		default:
			return nil
		}
		p.pos++
		if err := p.parseFactor(); err != nil {
			return err
		}
		p.push(item{kind: itemBinary, val: op})
	}
}

// parseFactor recognizes exponentiation right-associatively: the exponent
// is itself a factor, so 2^3^2 groups as 2^(3^2).
func (p *Parser) parseFactor() error {
	if err := p.parseAtom(); err != nil {
		return err
	}
	if p.cur().Type == token.CARET {
		p.pos++
		if err := p.parseFactor(); err != nil {
			return err
		}
		p.push(item{kind: itemBinary, val: core.OpPow})
	}
	return nil
}

// parseAtom recognizes the smallest entities. A leading minus applies to
// the whole atom and is pushed after the operand; the recursion makes
// --x parse as two nested negations.
func (p *Parser) parseAtom() error {
	if p.cur().Type == token.MINUS {
		p.pos++
		if err := p.parseAtom(); err != nil {
			return err
		}
		p.push(item{kind: itemUnary, val: core.OpNeg})
		return nil
	}

	tok := p.cur()
	switch tok.Type {
	case token.CONST:
		p.pos++
		p.push(atomItem(core.AtomConst, tok.Literal))
		return nil

	case token.INT:
		p.pos++
		p.push(atomItem(core.AtomInt, tok.Literal))
		return nil

	case token.REAL:
		p.pos++
		p.push(atomItem(core.AtomReal, tok.Literal))
		return nil

	case token.IDENT:
		p.pos++
		switch {
		case p.checkLit(p.d.ArrayLPar):
			return p.parseArrayArgs(tok.Literal)
		case p.checkLit(p.d.FuncLPar):
			return p.parseCallArgs(tok.Literal)
		default:
			p.push(atomItem(core.AtomIdent, tok.Literal))
			return nil
		}

	case token.PUNCT:
		if tok.Literal == p.d.LPar {
			p.pos++
			if err := p.parseComparison(); err != nil {
				return err
			}
			return p.expectLit(p.d.RPar)
		}
	}

	return p.errorf(errUnexpectedToken, tok)
}

// parseArrayArgs recognizes the bracketed index list of an array reference.
// Indices must be integer literals, optionally negated. The name is pushed
// after the close sentinel, preserving its case.
func (p *Parser) parseArrayArgs(name string) error {
	if err := p.expectLit(p.d.ArrayLPar); err != nil {
		return err
	}
	p.push(item{kind: itemArrayOpen})

	if err := p.parseArrayIndex(); err != nil {
		return err
	}
	for p.matchLit(p.d.ArrayDelim) {
		if err := p.parseArrayIndex(); err != nil {
			return err
		}
	}

	if err := p.expectLit(p.d.ArrayRPar); err != nil {
		return err
	}
	p.push(item{kind: itemArrayClose})
	p.push(item{kind: itemName, val: name})
	return nil
}

func (p *Parser) parseArrayIndex() error {
	neg := false
	if p.cur().Type == token.MINUS {
		neg = true
		p.pos++
	}
	tok := p.cur()
	if tok.Type != token.INT {
		return p.errorf(errIntegerIndex)
	}
	p.pos++
	lit := tok.Literal
	if neg {
		lit = "-" + lit
	}
	p.push(atomItem(core.AtomInt, lit))
	return nil
}

// parseCallArgs recognizes a function invocation. The callee name is
// canonicalized and pushed after the close sentinel.
func (p *Parser) parseCallArgs(name string) error {
	if err := p.expectLit(p.d.FuncLPar); err != nil {
		return err
	}
	p.push(item{kind: itemFuncOpen})

	if err := p.parseComparison(); err != nil {
		return err
	}
	for p.matchLit(p.d.FuncDelim) {
		if err := p.parseComparison(); err != nil {
			return err
		}
	}

	if err := p.expectLit(p.d.FuncRPar); err != nil {
		return err
	}
	p.push(item{kind: itemFuncClose})
	p.push(item{kind: itemName, val: p.canonicalName(name)})
	return nil
}

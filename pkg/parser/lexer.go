package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/formulate/pkg/dialect"
	"github.com/leapstack-labs/formulate/pkg/token"
)

// symbol is a dialect spelling the lexer matches by longest prefix.
type symbol struct {
	lit   string
	typ   token.Type
	canon string // canonical value for CONST symbols
}

// Lexer tokenizes one formula according to a dialect's spellings.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	symbols []symbol          // dialect spellings, longest first
	consts  map[string]string // identifier-shaped constant spellings -> canonical
}

// NewLexer creates a lexer for the given input and dialect.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		symbols: buildSymbols(d),
		consts:  identConstants(d),
	}
	l.readChar()
	return l
}

// buildSymbols compiles the dialect's spellings into a longest-match table.
// Earlier classifications win when two roles share a spelling (the symbolic
// dialect lists == both as comparison and as an accepted assignment form).
func buildSymbols(d *dialect.Dialect) []symbol {
	seen := make(map[string]bool)
	var syms []symbol
	add := func(lit string, typ token.Type, canon string) {
		lit = strings.TrimSpace(lit)
		if lit == "" || seen[lit] {
			return
		}
		seen[lit] = true
		syms = append(syms, symbol{lit: lit, typ: typ, canon: canon})
	}

	// Constant spellings that are not identifier-shaped (np.pi) must be
	// matched before identifier rules can split them at the dot.
	for spelling, canon := range d.Constants {
		if !isIdentShaped(spelling) {
			add(spelling, token.CONST, canon)
		}
	}

	// Same for dotted function surfaces (np.sin, scipy.special.expn), so a
	// dialect re-parses its own rendered output.
	for _, surface := range d.Operators {
		if isDottedName(surface) {
			add(surface, token.IDENT, "")
		}
	}

	add("==", token.EQ, "")
	add(d.Power, token.CARET, "")
	for _, a := range d.Assign {
		add(a, token.ASSIGN, "")
	}
	add("+", token.PLUS, "")
	add("-", token.MINUS, "")
	add("*", token.STAR, "")
	add("/", token.SLASH, "")

	for _, lit := range []string{
		d.ArrayLPar, d.ArrayRPar, d.ArrayDelim,
		d.FuncLPar, d.FuncRPar, d.FuncDelim,
		d.LPar, d.RPar,
	} {
		add(lit, token.PUNCT, "")
	}

	// Longest match first (e.g. [[ before [, ** before *).
	sort.SliceStable(syms, func(i, j int) bool {
		return len(syms[i].lit) > len(syms[j].lit)
	})
	return syms
}

// identConstants returns the dialect constants whose spelling is a plain
// identifier (Pi, E); those are recognized after identifier lexing.
func identConstants(d *dialect.Dialect) map[string]string {
	m := make(map[string]string)
	for spelling, canon := range d.Constants {
		if isIdentShaped(spelling) {
			m[spelling] = canon
		}
	}
	return m
}

func isIdentShaped(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// isDottedName reports a word with at least one interior dot, the shape of
// a qualified function surface.
func isDottedName(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	dotted := false
	for i := 1; i < len(s); i++ {
		switch {
		case s[i] == '.':
			dotted = true
		case !isIdentChar(s[i]):
			return false
		}
	}
	return dotted
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Pos: pos}
	}

	if tok, ok := l.matchSymbol(pos); ok {
		return tok
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber(pos)
	case isLetter(l.ch) || l.ch == '_':
		lit := l.readIdentifier()
		if canon, ok := l.consts[lit]; ok {
			return token.Token{Type: token.CONST, Literal: canon, Pos: pos}
		}
		return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}
	default:
		tok := token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok
	}
}

// matchSymbol checks the current position against the dialect spelling
// table, longest spelling first.
func (l *Lexer) matchSymbol(pos token.Position) (token.Token, bool) {
	remaining := l.input[l.pos:]
	for _, sym := range l.symbols {
		if !strings.HasPrefix(remaining, sym.lit) {
			continue
		}
		// A word-shaped spelling such as np.pi must end at a word boundary.
		if (sym.typ == token.CONST || sym.typ == token.IDENT) &&
			len(remaining) > len(sym.lit) && isIdentChar(remaining[len(sym.lit)]) {
			continue
		}
		for range sym.lit {
			l.readChar()
		}
		lit := sym.lit
		if sym.typ == token.CONST {
			lit = sym.canon
		}
		return token.Token{Type: sym.typ, Literal: lit, Pos: pos}, true
	}
	return token.Token{}, false
}

// readNumber reads an integer or real literal. Reals allow a trailing dot
// (3.) and an exponent part (6.02E23, 2e3); the exponent is consumed only
// when digits follow, so an identifier can still start right after a number.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	typ := token.INT

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		typ = token.REAL
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.exponentDigitsAhead()) {
			typ = token.REAL
			l.readChar() // e
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return token.Token{Type: typ, Literal: l.input[start:l.pos], Pos: pos}
}

// exponentDigitsAhead reports whether a signed exponent has digits after
// the sign, looking past the current e and the sign character.
func (l *Lexer) exponentDigitsAhead() bool {
	i := l.readPos + 1
	return i < len(l.input) && isDigit(l.input[i])
}

// readIdentifier reads a name: a letter or underscore followed by letters,
// digits, underscores, or dollar signs.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '$'
}

// lexAll tokenizes the whole input, failing on the first illegal byte.
func lexAll(input string, d *dialect.Dialect) ([]token.Token, error) {
	l := NewLexer(input, d)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return nil, &ParseError{Pos: tok.Pos, Message: fmt.Sprintf(errUnexpectedByte, tok.Literal)}
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

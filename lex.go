package mathparse

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type token struct {
	kind tokenKind
	// num is the value of a number token.
	num float64
	// col is the 1-based byte column at which the token starts.
	col int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text() + "@" + strconv.Itoa(t.col)
}

// text returns the display text of the token. It is the empty string for the
// end of input.
func (t token) text() string {
	switch t.kind {
	case tokenNum:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case tokenEOF, tokenNone:
		return ""
	default:
		return Operators[t.kind-tokenPlus : t.kind-tokenPlus+1]
	}
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal or a resolved symbol.
	tokenNum
	// Operators and brackets. The order matches Operators.
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenPlus:
		return "Plus"
	case tokenMinus:
		return "Minus"
	case tokenStar:
		return "Star"
	case tokenSlash:
		return "Slash"
	case tokenLParen:
		return "LParen"
	case tokenRParen:
		return "RParen"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the bytes which are lexed as operators and brackets.
const Operators = "+-*/()"

// MaxSymbolLen is the maximum length in bytes of a symbol passed to a
// LookupFunc. Longer symbols are lexing errors.
const MaxSymbolLen = 31

type lexer struct {
	src string
	// pos is the index of the next unconsumed byte. It equals len(src) once
	// the input is exhausted.
	pos    int
	lookup LookupFunc
	// delim makes symbols end at operators and brackets as well as at
	// whitespace.
	delim bool
}

// reset prepares the lexer to scan src from its start.
func (l *lexer) reset(src string) {
	l.src = src
	l.pos = 0
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns an EOF token.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	tok := token{col: l.pos + 1}
	if l.pos >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	c := l.src[l.pos]
	switch {
	case isAlnum(c), c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		v, n, err := l.literal()
		if err != nil {
			return tok, err
		}
		l.pos += n
		tok.kind = tokenNum
		tok.num = v
		return tok, nil
	}
	if k := strings.IndexByte(Operators, c); k >= 0 {
		l.pos++
		tok.kind = tokenPlus + tokenKind(k)
		return tok, nil
	}
	// Report the whole rune so that the error message is readable.
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return tok, l.error("", string(r))
}

// literal scans a number or symbol at the cursor. The result includes the
// number of bytes the literal occupies. literal does not move the cursor.
func (l *lexer) literal() (float64, int, error) {
	s := l.src[l.pos:]
	if len(s) >= 3 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return l.hex(s)
	}
	if n := scanDecimal(s); n > 0 {
		v, err := strconv.ParseFloat(s[:n], 64)
		if err != nil {
			// The literal is well-formed, so this is a range error.
			return 0, 0, l.error("number", s[:n])
		}
		return v, n, nil
	}
	return l.symbol(s)
}

// hex scans a hexadecimal integer literal. s begins with 0x or 0X.
func (l *lexer) hex(s string) (float64, int, error) {
	n := scanDigits(s[2:], isHex)
	if n == 0 {
		return 0, 0, l.error("hexadecimal", s[:2])
	}
	v, err := strconv.ParseInt(s[2:2+n], 16, 64)
	if err != nil {
		return 0, 0, l.error("hexadecimal", s[:2+n])
	}
	return float64(v), 2 + n, nil
}

// symbol scans a symbol and resolves it with the lookup function.
func (l *lexer) symbol(s string) (float64, int, error) {
	n := 0
	for n < len(s) && !isSpace(s[n]) {
		if l.delim && strings.IndexByte(Operators, s[n]) >= 0 {
			break
		}
		n++
	}
	name := s[:n]
	if n > MaxSymbolLen || l.lookup == nil {
		return 0, 0, l.error("symbol", name)
	}
	v, err := l.lookup(name)
	if err != nil {
		return 0, 0, &LookupError{Name: name, Col: l.pos + 1, Err: err}
	}
	return v, n, nil
}

// scanDecimal returns the length of the longest decimal or floating-point
// literal at the start of s, or 0 if there is none. An exponent is included
// only if it has at least one digit.
func scanDecimal(s string) int {
	n := scanDigits(s, isDigit)
	if n < len(s) && s[n] == '.' {
		m := scanDigits(s[n+1:], isDigit)
		if n == 0 && m == 0 {
			return 0
		}
		n += 1 + m
	}
	if n == 0 {
		return 0
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		k := n + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if m := scanDigits(s[k:], isDigit); m > 0 {
			n = k + m
		}
	}
	return n
}

func scanDigits(s string, digit func(byte) bool) int {
	n := 0
	for n < len(s) && digit(s[n]) {
		n++
	}
	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isAlnum(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func (l *lexer) error(kind, text string) error {
	return &LexError{
		Text: text,
		Kind: kind,
		Col:  l.pos + 1,
	}
}

// LexError indicates input that cannot be tokenized. It implements InputError.
type LexError struct {
	// Text is the literal or character that could not be tokenized.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "hexadecimal", "symbol", or the empty string if the character does not
	// begin any token.
	Kind string
	// Col is the 1-based byte column at which the token starts.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

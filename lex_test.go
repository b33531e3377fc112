package mathparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scanAll scans tokens up to and including EOF or the first error.
func scanAll(l *lexer) ([]token, error) {
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

func num(v float64, col int) token {
	return token{kind: tokenNum, num: v, col: col}
}

func op(kind tokenKind, col int) token {
	return token{kind: kind, col: col}
}

func eof(col int) token {
	return token{kind: tokenEOF, col: col}
}

var testsyms = map[string]float64{
	"pi":  3,
	"x":   2,
	"abc": 1,
	"x*2": 9,
}

func testLookup(name string) (float64, error) {
	v, ok := testsyms[name]
	if !ok {
		return 0, errors.New("no such symbol")
	}
	return v, nil
}

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		lookup LookupFunc
		delim  bool
		tokens []token
		err    bool
	}{
		// spaces
		{name: "empty", src: "", tokens: []token{eof(1)}},
		{name: "spaces", src: " \t\v\f\r\n ", tokens: []token{eof(8)}},
		// numbers
		{name: "zero", src: "0", tokens: []token{num(0, 1), eof(2)}},
		{name: "int", src: "9876543210", tokens: []token{num(9876543210, 1), eof(11)}},
		{name: "ints", src: "1 0", tokens: []token{num(1, 1), num(0, 3), eof(4)}},
		{name: "float", src: "1.0", tokens: []token{num(1, 1), eof(4)}},
		{name: "frac", src: "0.5", tokens: []token{num(0.5, 1), eof(4)}},
		{name: "dotfrac", src: ".5", tokens: []token{num(0.5, 1), eof(3)}},
		{name: "dotend", src: "5.", tokens: []token{num(5, 1), eof(3)}},
		{name: "twodots", src: "1.5.5", tokens: []token{num(1.5, 1), num(0.5, 4), eof(6)}},
		{name: "exp", src: "1e3", tokens: []token{num(1000, 1), eof(4)}},
		{name: "expplus", src: "1e+2", tokens: []token{num(100, 1), eof(5)}},
		{name: "expminus", src: "2E-1", tokens: []token{num(0.2, 1), eof(5)}},
		{name: "expnodigits", src: "1e", tokens: []token{num(1, 1)}, err: true},
		{name: "expsign", src: "1e+", tokens: []token{num(1, 1)}, err: true},
		// hexadecimal
		{name: "hex", src: "0x1F", tokens: []token{num(31, 1), eof(5)}},
		{name: "HEX", src: "0XfF", tokens: []token{num(255, 1), eof(5)}},
		{name: "hexmax", src: "0x7fffffffffffffff", tokens: []token{num(0x7fffffffffffffff, 1), eof(19)}},
		{name: "hexop", src: "0x10+1", tokens: []token{num(16, 1), op(tokenPlus, 5), num(1, 6), eof(7)}},
		{name: "hexshort", src: "0x", tokens: []token{num(0, 1)}, err: true},
		{name: "hexnodigits", src: "0x ", err: true},
		{name: "hexbad", src: "0xg", err: true},
		{name: "hexoverflow", src: "0x8000000000000000", err: true},
		// operators
		{name: "ops", src: "+-*/()", tokens: []token{
			op(tokenPlus, 1), op(tokenMinus, 2), op(tokenStar, 3),
			op(tokenSlash, 4), op(tokenLParen, 5), op(tokenRParen, 6), eof(7),
		}},
		{name: "sum", src: "1+2", tokens: []token{num(1, 1), op(tokenPlus, 2), num(2, 3), eof(4)}},
		{name: "brackets", src: " ( 1 ) ", tokens: []token{op(tokenLParen, 2), num(1, 4), op(tokenRParen, 6), eof(8)}},
		// symbols
		{name: "nolookup", src: "abc", err: true},
		{name: "sym", src: "pi", lookup: testLookup, tokens: []token{num(3, 1), eof(3)}},
		{name: "numsym", src: "12abc", lookup: testLookup, tokens: []token{num(12, 1), num(1, 3), eof(6)}},
		{name: "symspace", src: "x * 2", lookup: testLookup, tokens: []token{num(2, 1), op(tokenStar, 3), num(2, 5), eof(6)}},
		{name: "symgreedy", src: "x*2", lookup: testLookup, tokens: []token{num(9, 1), eof(4)}},
		{name: "symdelim", src: "x*2", lookup: testLookup, delim: true, tokens: []token{num(2, 1), op(tokenStar, 2), num(2, 3), eof(4)}},
		{name: "symparen", src: "(pi)", lookup: testLookup, delim: true, tokens: []token{op(tokenLParen, 1), num(3, 2), op(tokenRParen, 4), eof(5)}},
		{name: "symmissing", src: "1 y", lookup: testLookup, tokens: []token{num(1, 1)}, err: true},
		{name: "symlong", src: strings.Repeat("x", MaxSymbolLen+1), lookup: testLookup, err: true},
		// erroneous characters
		{name: "dollar", src: "$", err: true},
		{name: "dot", src: ".", err: true},
		{name: "pi", src: "π", err: true},
		{name: "trailing", src: "1 $", tokens: []token{num(1, 1)}, err: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := lexer{lookup: c.lookup, delim: c.delim}
			l.reset(c.src)
			got, err := scanAll(&l)
			if diff := cmp.Diff(c.tokens, got, cmp.AllowUnexported(token{})); diff != "" {
				t.Errorf("scanning %q: wrong tokens (-want +got):\n%s", c.src, diff)
			}
			if c.err != (err != nil) {
				t.Errorf("scanning %q: wanted error %t, got %v", c.src, c.err, err)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		text string
		col  int
	}{
		{"$", "", "$", 1},
		{"1 $", "", "$", 3},
		{"π", "", "π", 1},
		{"0x ", "hexadecimal", "0x", 1},
		{" 0x8000000000000000", "hexadecimal", "0x8000000000000000", 2},
		{"1e999", "number", "1e999", 1},
		{"abc", "symbol", "abc", 1},
		{"  " + strings.Repeat("a", 32), "symbol", strings.Repeat("a", 32), 3},
		{"fae;oiwje;ofj", "symbol", "fae;oiwje;ofj", 1},
	}
	for _, c := range cases {
		l := lexer{}
		l.reset(c.src)
		_, err := scanAll(&l)
		var lerr *LexError
		if !errors.As(err, &lerr) {
			t.Errorf("scanning %q: wanted LexError, got %v", c.src, err)
			continue
		}
		want := LexError{Text: c.text, Kind: c.kind, Col: c.col}
		if *lerr != want {
			t.Errorf("scanning %q: wanted %+v, got %+v", c.src, want, *lerr)
		}
	}
}

func TestLexLookupError(t *testing.T) {
	l := lexer{lookup: testLookup, delim: true}
	l.reset("x*y")
	_, err := scanAll(&l)
	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("wanted LookupError, got %v", err)
	}
	if lerr.Name != "y" || lerr.Col != 3 {
		t.Errorf("wrong lookup error: %+v", lerr)
	}
	if lerr.Err == nil || lerr.Err.Error() != "no such symbol" {
		t.Errorf("lookup error not preserved: %v", lerr.Err)
	}
}

func TestLexExhausted(t *testing.T) {
	l := lexer{}
	l.reset("1")
	for i := 0; i < 3; i++ {
		if _, err := l.next(); err != nil {
			t.Fatal(err)
		}
	}
	tok, err := l.next()
	if err != nil || tok.kind != tokenEOF {
		t.Errorf("wanted repeated EOF, got %v, %v", tok, err)
	}
	if l.pos != len(l.src) {
		t.Errorf("cursor at %d after exhausting %q", l.pos, l.src)
	}
}

func TestTokenText(t *testing.T) {
	for i, r := range Operators {
		tok := op(tokenPlus+tokenKind(i), 1)
		if got := tok.text(); got != string(r) {
			t.Errorf("%v has text %q, want %q", tok.kind, got, string(r))
		}
	}
	if got := num(2.5, 1).text(); got != "2.5" {
		t.Errorf("number text is %q", got)
	}
	if got := eof(1).text(); got != "" {
		t.Errorf("EOF text is %q", got)
	}
}

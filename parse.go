package mathparse

import (
	"math"

	"github.com/sirupsen/logrus"
)

// expression = term [ ('+' | '-') term ]
// term       = factor [ ('*' | '/') factor ]
// factor     = num | '(' expression ')'

// LookupFunc resolves a symbol to a value. Symbols are words of at most
// MaxSymbolLen bytes which begin with an ASCII letter.
type LookupFunc func(name string) (float64, error)

// Parser evaluates expressions. A Parser may evaluate any number of
// expressions in sequence, but it is not safe to use a Parser concurrently.
type Parser struct {
	lex lexer
	// cur is the lookahead token.
	cur token
	// depth is the number of open brackets enclosing the current token.
	depth int
	cfg   config
}

// New creates a parser. lookup resolves symbols in expressions; if it is nil,
// any symbol is an error. The given options are applied in order.
func New(lookup LookupFunc, opts ...Option) *Parser {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		cfg = opt.option(cfg)
	}
	return &Parser{
		lex: lexer{lookup: lookup, delim: cfg.delim},
		cfg: cfg,
	}
}

// Solve evaluates an expression.
//
// Input following a complete expression is ignored, unless it begins with an
// operator: each precedence level applies at most one operator, so "1+1+1"
// fails where "(1+1)+1" succeeds.
func (p *Parser) Solve(text string) (float64, error) {
	p.lex.reset(text)
	p.depth = 0
	p.cur = token{}
	tok, err := p.lex.next()
	if err != nil {
		return 0, p.fail("solve", err)
	}
	p.cur = tok
	r, err := p.expression()
	if err != nil {
		return 0, err
	}
	switch p.cur.kind {
	case tokenPlus, tokenMinus, tokenStar, tokenSlash:
		return 0, p.fail("solve", &SyntaxError{Col: p.cur.col, Got: p.cur.text()})
	}
	return r, nil
}

// SolveInt evaluates an expression and truncates the result toward zero. If
// the result is NaN or outside the range of int64, the error is a RangeError.
func (p *Parser) SolveInt(text string) (int64, error) {
	r, err := p.Solve(text)
	if err != nil {
		return 0, err
	}
	// -MinInt64 overflows int64 but is exact as float64.
	if math.IsNaN(r) || r < math.MinInt64 || r >= -math.MinInt64 {
		return 0, &RangeError{X: r}
	}
	return int64(r), nil
}

// Close releases the parser's lookup function and options. Afterward, p is
// equivalent to New(nil). Calling Close is optional.
func (p *Parser) Close() {
	*p = *New(nil)
}

// Solve is a shortcut to evaluate an expression containing no symbols with a
// new parser.
func Solve(text string) (float64, error) {
	return New(nil).Solve(text)
}

// SolveInt is a shortcut to evaluate an expression containing no symbols with
// a new parser and truncate the result toward zero.
func SolveInt(text string) (int64, error) {
	return New(nil).SolveInt(text)
}

// eat advances past the current token, which must be of the given kind.
func (p *Parser) eat(kind tokenKind) error {
	if p.cur.kind != kind {
		return &SyntaxError{Col: p.cur.col, Want: kind.String(), Got: p.cur.text()}
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expression() (float64, error) {
	l, err := p.term()
	if err != nil {
		return 0, err
	}
	op := p.cur
	switch op.kind {
	case tokenPlus, tokenMinus:
	default:
		return l, nil
	}
	if err := p.eat(op.kind); err != nil {
		return 0, p.fail("expression", err)
	}
	r, err := p.term()
	if err != nil {
		return 0, err
	}
	if op.kind == tokenPlus {
		return l + r, nil
	}
	return l - r, nil
}

func (p *Parser) term() (float64, error) {
	l, err := p.factor()
	if err != nil {
		return 0, err
	}
	op := p.cur
	switch op.kind {
	case tokenStar, tokenSlash:
	default:
		return l, nil
	}
	if err := p.eat(op.kind); err != nil {
		return 0, p.fail("term", err)
	}
	r, err := p.factor()
	if err != nil {
		return 0, err
	}
	if op.kind == tokenStar {
		// The conversion forbids fusing with an addition in the caller.
		return float64(l * r), nil
	}
	if r == 0 && p.cfg.strictdiv {
		return 0, p.fail("term", &DivisionError{Col: op.col, X: l})
	}
	return l / r, nil
}

func (p *Parser) factor() (float64, error) {
	tok := p.cur
	switch tok.kind {
	case tokenNum:
		if err := p.eat(tokenNum); err != nil {
			return 0, p.fail("factor", err)
		}
		return tok.num, nil
	case tokenLParen:
		p.depth++
		if p.cfg.maxDepth > 0 && p.depth > p.cfg.maxDepth {
			return 0, p.fail("factor", &DepthError{Col: tok.col, Max: p.cfg.maxDepth})
		}
		if err := p.eat(tokenLParen); err != nil {
			return 0, p.fail("factor", err)
		}
		r, err := p.expression()
		if err != nil {
			return 0, err
		}
		if p.cur.kind != tokenRParen {
			return 0, p.fail("factor", &BracketError{Col: p.cur.col, Open: tok.col, Got: p.cur.text()})
		}
		if err := p.eat(tokenRParen); err != nil {
			return 0, p.fail("factor", err)
		}
		p.depth--
		return r, nil
	default:
		return 0, p.fail("factor", &SyntaxError{Col: tok.col, Want: "number or (", Got: tok.text()})
	}
}

// fail logs a failure at the given grammar rule, if the parser has a logger,
// and returns err.
func (p *Parser) fail(rule string, err error) error {
	if p.cfg.log == nil {
		return err
	}
	e := p.cfg.log.WithFields(logrus.Fields{
		"rule":  rule,
		"token": p.cur.String(),
	})
	if ie, ok := err.(InputError); ok {
		e = e.WithField("col", ie.Pos())
	}
	e.WithError(err).Debug("mathparse: solve failed")
	return err
}

// Package symbols provides symbol tables for resolving names in mathparse
// expressions.
package symbols

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/zephyrtronium/mathparse"
)

var (
	// ErrUndefined is returned when a symbol has no value.
	ErrUndefined = errors.NewKind("undefined symbol %q")
	// ErrInvalidName is returned when defining a symbol that the lexer could
	// never produce.
	ErrInvalidName = errors.NewKind("invalid symbol name %q")
)

// Table maps symbol names to values. A Table is safe for concurrent lookups as
// long as it is not modified.
type Table map[string]float64

// Lookup returns the value of a symbol. It is a mathparse.LookupFunc.
func (t Table) Lookup(name string) (float64, error) {
	v, ok := t[name]
	if !ok {
		return 0, ErrUndefined.New(name)
	}
	return v, nil
}

// Set sets the value of a symbol. The name must begin with an ASCII letter,
// contain no whitespace, and be at most mathparse.MaxSymbolLen bytes.
func (t Table) Set(name string, v float64) error {
	if !ValidName(name) {
		return ErrInvalidName.New(name)
	}
	t[name] = v
	return nil
}

// Define sets the value of a symbol to the result of a formula. Symbols in the
// formula are resolved from t.
func (t Table) Define(name, formula string, opts ...mathparse.Option) error {
	if !ValidName(name) {
		return ErrInvalidName.New(name)
	}
	p := mathparse.New(t.Lookup, opts...)
	defer p.Close()
	v, err := p.Solve(formula)
	if err != nil {
		return err
	}
	t[name] = v
	return nil
}

// ValidName reports whether the lexer can produce name as a symbol.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) > mathparse.MaxSymbolLen {
		return false
	}
	c := name[0]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return false
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return false
		}
	}
	return true
}

// Chain combines lookup functions. Each symbol is resolved by the first
// function that does not return an ErrUndefined error. Other errors stop the
// search.
func Chain(lookups ...mathparse.LookupFunc) mathparse.LookupFunc {
	return func(name string) (float64, error) {
		for _, lk := range lookups {
			if lk == nil {
				continue
			}
			v, err := lk(name)
			if err == nil {
				return v, nil
			}
			if !ErrUndefined.Is(err) {
				return 0, err
			}
		}
		return 0, ErrUndefined.New(name)
	}
}

// Constants returns a table of mathematical constants computed to prec bits
// and rounded to float64. If prec is 0, it is 64.
//
// The table contains pi, e, phi, sqrt2, ln2, ln10, log2e, log10e, and inf.
func Constants(prec uint) Table {
	if prec == 0 {
		prec = 64
	}
	z := func() *big.Float {
		return new(big.Float).SetPrec(prec)
	}
	num := func(x int64) *big.Float {
		return z().SetInt64(x)
	}
	one := num(1)
	ln2 := bigfloat.Log(z(), num(2))
	ln10 := bigfloat.Log(z(), num(10))
	phi := z().Sqrt(num(5))
	phi.Add(phi, one)
	phi.Quo(phi, num(2))
	vals := map[string]*big.Float{
		"pi":     bigfloat.Pi(z()),
		"e":      bigfloat.Exp(z(), one),
		"phi":    phi,
		"sqrt2":  z().Sqrt(num(2)),
		"ln2":    ln2,
		"ln10":   ln10,
		"log2e":  z().Quo(one, ln2),
		"log10e": z().Quo(one, ln10),
	}
	t := make(Table, len(vals)+1)
	for name, v := range vals {
		t[name], _ = v.Float64()
	}
	t["inf"] = math.Inf(1)
	return t
}

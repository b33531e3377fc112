// Package selftest holds the built-in table of expressions used to check a
// mathparse.Parser from the command line.
package selftest

import (
	"fmt"
	"io"
	"math"

	"github.com/zephyrtronium/mathparse"
)

// Case is a single self-test expression.
type Case struct {
	// Line identifies the case in reports.
	Line int
	Expr string
	Want float64
	// Fail indicates that solving Expr must fail.
	Fail bool
}

// Cases is the default self-test table.
var Cases = []Case{
	{Line: 1, Expr: "1+1", Want: 2},
	{Line: 2, Expr: "1 + 1", Want: 2},
	{Line: 3, Expr: "10000 + 10000", Want: 20000},
	{Line: 4, Expr: "", Fail: true},
	{Line: 5, Expr: "(", Fail: true},
	{Line: 6, Expr: "1", Want: 1},
	{Line: 7, Expr: "1 +", Fail: true},
	{Line: 8, Expr: "1 -", Fail: true},
	{Line: 9, Expr: "1 *", Fail: true},
	{Line: 10, Expr: "1 /", Fail: true},
	{Line: 11, Expr: "p8cn23pr98j3p9 + 23ra", Fail: true},
	{Line: 12, Expr: "fae;oiwje;ofj;oifj;oij+_)(*&^@!%$!#@&*7_$(*", Fail: true},
	{Line: 13, Expr: "(10 + 4 / 2) - 3", Want: 9},
	{Line: 14, Expr: "(8*8) + (2 + (3 * 2))", Want: 72},
	{Line: 15, Expr: "((((1))))", Want: 1},
	{Line: 16, Expr: "1+1+1", Fail: true},
	{Line: 17, Expr: "1)(", Want: 1},
	{Line: 18, Expr: "0x1F * 2", Want: 62},
	{Line: 19, Expr: ".5 * 4", Want: 2},
	{Line: 20, Expr: "7/2", Want: 3.5},
}

// Report summarizes a self-test run.
type Report struct {
	Total  int
	Passed int
	// Failed lists the cases that did not behave as expected.
	Failed []Case
}

// OK reports whether every case passed.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Run solves each case with p and writes a line to w for each case that does
// not behave as expected. If cases is nil, Run uses Cases.
func Run(p *mathparse.Parser, cases []Case, w io.Writer) Report {
	if cases == nil {
		cases = Cases
	}
	rep := Report{Total: len(cases)}
	for _, c := range cases {
		r, err := p.Solve(c.Expr)
		switch {
		case err != nil && c.Fail:
			rep.Passed++
			continue
		case err != nil:
			fmt.Fprintf(w, "%d: %q failed to parse: %v\n", c.Line, c.Expr, err)
		case c.Fail:
			fmt.Fprintf(w, "%d: %q == %g but should fail\n", c.Line, c.Expr, r)
		case r != c.Want && !(math.IsNaN(r) && math.IsNaN(c.Want)):
			fmt.Fprintf(w, "%d: %q == %g != %g\n", c.Line, c.Expr, r, c.Want)
		default:
			rep.Passed++
			continue
		}
		rep.Failed = append(rep.Failed, c)
	}
	return rep
}

package mathparse

import (
	"errors"
	"strconv"
)

// SyntaxError is an error indicating a token that does not fit the grammar
// where it appears. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token.
	Col int
	// Want describes what the parser expected. If it is empty, the parser
	// expected the expression to end.
	Want string
	// Got is the unexpected token, or the empty string for the end of input.
	Got string
}

func (err *SyntaxError) Error() string {
	switch {
	case err.Want == "":
		return errpos(err.Col, "cannot chain operator "+strconv.Quote(err.Got)+" without brackets")
	case err.Got == "":
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "unexpected end of input, want "+err.Want)
	default:
		return errpos(err.Col, "unexpected "+strconv.Quote(err.Got)+", want "+err.Want)
	}
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an open bracket that is not matched by
// a close bracket. It implements InputError.
type BracketError struct {
	// Col is the position of the token found instead of the close bracket.
	Col int
	// Open is the position of the open bracket.
	Open int
	// Got is the token found instead of the close bracket, or the empty
	// string for the end of input.
	Got string
}

func (err *BracketError) Error() string {
	open := "open bracket at column " + strconv.Itoa(err.Open)
	if err.Got == "" {
		return errpos(err.Col, open+" with no close bracket")
	}
	return errpos(err.Col, open+" closed by "+strconv.Quote(err.Got))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DepthError is an error indicating brackets nested more deeply than the
// parser allows. It implements InputError.
type DepthError struct {
	// Col is the position of the open bracket that exceeded the limit.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression too deeply nested (limit "+strconv.Itoa(err.Max)+")")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// DivisionError is an error indicating division by zero. It is only returned
// by parsers created with StrictDivision. It implements InputError.
type DivisionError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return errpos(err.Col, "division of "+strconv.FormatFloat(err.X, 'g', -1, 64)+" by zero")
}

func (err *DivisionError) Pos() int {
	return err.Col
}

// LookupError is an error returned by a LookupFunc while resolving a symbol.
// It implements InputError and unwraps to the lookup's error.
type LookupError struct {
	// Name is the symbol being resolved.
	Name string
	// Col is the position of the symbol.
	Col int
	// Err is the error the lookup returned.
	Err error
}

func (err *LookupError) Error() string {
	return errpos(err.Col, "resolving "+strconv.Quote(err.Name)+": "+err.Err.Error())
}

func (err *LookupError) Unwrap() error {
	return err.Err
}

func (err *LookupError) Pos() int {
	return err.Col
}

// RangeError is an error indicating a result that cannot be converted to an
// integer.
type RangeError struct {
	// X is the result of the expression.
	X float64
}

func (err *RangeError) Error() string {
	return "result " + strconv.FormatFloat(err.X, 'g', -1, 64) + " out of int64 range"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*LookupError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*DivisionError)(nil)
)

// IsLexError reports whether err arose from input that could not be
// tokenized, including symbols that could not be resolved.
func IsLexError(err error) bool {
	var (
		lex *LexError
		lk  *LookupError
	)
	return errors.As(err, &lex) || errors.As(err, &lk)
}

// IsParseError reports whether err arose from tokens that do not form a valid
// expression.
func IsParseError(err error) bool {
	var (
		syn *SyntaxError
		br  *BracketError
		dep *DepthError
		div *DivisionError
	)
	return errors.As(err, &syn) || errors.As(err, &br) || errors.As(err, &dep) || errors.As(err, &div)
}

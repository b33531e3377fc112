package mathparse

import "github.com/sirupsen/logrus"

// Option is an option for creating a Parser.
type Option interface {
	option(config) config
}

type (
	depthopt int
	divopt   struct{}
	delimopt struct{}
	logopt   struct {
		log logrus.FieldLogger
	}
)

// config holds the settings of a Parser.
type config struct {
	// maxDepth is the bracket nesting limit. Zero or less means no limit.
	maxDepth int
	// strictdiv makes division by zero an error.
	strictdiv bool
	// delim makes symbols end at operators and brackets.
	delim bool
	// log receives debug traces of failures. May be nil.
	log logrus.FieldLogger
}

// DefaultMaxDepth is the bracket nesting limit of parsers created without the
// MaxDepth option.
const DefaultMaxDepth = 256

// MaxDepth sets the maximum nesting depth of brackets. Deeper expressions fail
// with a DepthError. If n is zero or less, nesting is limited only by the
// goroutine stack, which may be exhausted by hostile input.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.maxDepth = int(o)
	return c
}

// StrictDivision makes division by zero fail with a DivisionError. Without it,
// division by zero produces an infinity or NaN.
func StrictDivision() Option {
	return divopt{}
}

func (divopt) option(c config) config {
	c.strictdiv = true
	return c
}

// DelimitSymbols makes symbols end at operators and brackets, so that e.g.
// "2*pi" is a multiplication of 2 and the symbol "pi". By default, a symbol
// extends to the next whitespace.
func DelimitSymbols() Option {
	return delimopt{}
}

func (delimopt) option(c config) config {
	c.delim = true
	return c
}

// Logger sets a logger to receive a debug entry for every failure the parser
// encounters. By default, the parser does not log.
func Logger(log logrus.FieldLogger) Option {
	return logopt{log}
}

func (o logopt) option(c config) config {
	c.log = o.log
	return c
}

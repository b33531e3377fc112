// Package mathparse evaluates infix arithmetic expressions.
//
// Expressions contain numbers, the operators + - * /, and parentheses.
// Numbers may be decimal integers like "123", floating-point numbers like
// "0.5", ".5", or "1e3", or hexadecimal integers like "0x1F". Any other word
// beginning with a letter is a symbol, which the parser resolves using the
// LookupFunc given to New.
//
// Parsing and evaluation happen together in a single pass; there is no
// reusable parse tree. Each precedence level applies at most one operator, so
// "1+2*3" is 7, but "1+2+3" must be written as "(1+2)+3". There is no unary
// minus. Input following a complete expression is ignored unless it begins
// with an operator, so callers must not assume that the whole input was
// consumed.
//
// Parentheses nest at most DefaultMaxDepth levels unless a parser is created
// with the MaxDepth option.
package mathparse

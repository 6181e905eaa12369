// Package diag is the explicit diagnostics sink threaded through the
// scanner, parser and resolver, replacing the teacher's package-level
// hasError global (spec.md §9: "Global error flags ... Replace with an
// explicit diagnostics sink passed through the pipeline").
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/raspacee/lox/internal/token"
)

// StaticError is a lexical, parse, or resolution error tied to a source
// line and, where available, the offending token.
type StaticError struct {
	Line    int
	Where   string // "" for "at line N", "end" for EOF, else "'LEXEME'"
	Message string
}

func (e *StaticError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Line, e.Where, e.Message)
}

// Sink accumulates static errors across one scan/parse/resolve pass so that
// a single run can report every error it finds rather than aborting at the
// first. It is not safe for concurrent use; the pipeline is single-threaded
// (spec.md §5).
type Sink struct {
	errs *multierror.Error
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error records a static error at a line with no specific token.
func (s *Sink) Error(line int, message string) {
	s.report(&StaticError{Line: line, Message: message})
}

// ErrorAtToken records a static error anchored to a token, formatting the
// "at end" / "at 'LEXEME'" location the way spec.md §6 requires.
func (s *Sink) ErrorAtToken(tok token.Token, message string) {
	where := "'" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = "end"
	}
	s.report(&StaticError{Line: tok.Line, Where: where, Message: message})
}

func (s *Sink) report(e *StaticError) {
	logrus.WithFields(logrus.Fields{"line": e.Line, "where": e.Where}).Debug(e.Message)
	s.errs = multierror.Append(s.errs, e)
}

// HadError reports whether any static error has been recorded.
func (s *Sink) HadError() bool {
	return s.errs != nil && len(s.errs.Errors) > 0
}

// Errors returns every recorded static error in the order reported.
func (s *Sink) Errors() []error {
	if s.errs == nil {
		return nil
	}
	return s.errs.Errors
}

// RuntimeError is raised during evaluation; it carries the offending token
// for line reporting (spec.md §6: "MESSAGE\n[line N]").
type RuntimeError struct {
	Token   token.Token
	Message string
}

func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

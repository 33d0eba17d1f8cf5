package reader

import "github.com/cwbudde/go-scheme/internal/values"

// LineSource supplies one more line of input on demand, returning
// ok == false at end of input (spec.md §4.C's EOF handling).
type LineSource interface {
	NextLine(prompt string) (line string, ok bool)
}

// TokenBuffer holds the REPL's persistent token stream and implements
// the incremental reading protocol of spec.md §4.C: ReadExpression
// attempts ReadFrom; if tokens run out mid-expression, it requests
// another line (with a continuation prompt) and retries after
// restoring the pre-attempt buffer. A genuine syntax error discards the
// buffer entirely.
type TokenBuffer struct {
	tokens    []Token
	lineNo    int
	PrimaryPrompt      string
	ContinuationPrompt string
}

// NewTokenBuffer returns an empty buffer with the default prompts from
// spec.md §6.
func NewTokenBuffer() *TokenBuffer {
	return &TokenBuffer{
		lineNo:             1,
		PrimaryPrompt:      "> ",
		ContinuationPrompt: "| ",
	}
}

// ReadExpression reads one expression, pulling more lines from src as
// needed. It returns values.EOFObject (with ok error) when src is
// exhausted before a complete expression is read.
func (b *TokenBuffer) ReadExpression(src LineSource) (values.Value, error) {
	for {
		saved := append([]Token(nil), b.tokens...)
		v, err := ReadFrom(&b.tokens)
		if err == nil {
			return v, nil
		}
		if !NeedsMoreInput(err) {
			b.tokens = nil
			return nil, err
		}
		prompt := b.PrimaryPrompt
		if len(saved) > 0 {
			prompt = b.ContinuationPrompt
		}
		line, ok := src.NextLine(prompt)
		if !ok {
			return values.EOFObject, nil
		}
		b.tokens = saved
		newTokens := Tokenize(line, b.lineNo)
		b.lineNo++
		b.tokens = append(b.tokens, newTokens...)
	}
}

// Feed appends source text (e.g. a whole file's contents) to the
// buffer without requiring a LineSource; used by the file loader, which
// never needs incremental continuation since the whole file is
// available up front.
func (b *TokenBuffer) Feed(source string) {
	b.tokens = append(b.tokens, Tokenize(source, b.lineNo)...)
}

// Empty reports whether the buffer has no pending tokens.
func (b *TokenBuffer) Empty() bool { return len(b.tokens) == 0 }

// ReadNext reads one expression from already-fed tokens without
// requesting more input, returning values.EOFObject once the buffer is
// exhausted. Used by the file loader to interleave reading and
// evaluating top-level forms one at a time, matching scm.py's `load`
// (a mid-expression shortfall here is a real syntax error, since there
// is no further input to request).
func (b *TokenBuffer) ReadNext() (values.Value, error) {
	if b.Empty() {
		return values.EOFObject, nil
	}
	v, err := ReadFrom(&b.tokens)
	if err != nil {
		if NeedsMoreInput(err) {
			return nil, &SyntaxError{Message: "unexpected end of file"}
		}
		return nil, err
	}
	return v, nil
}

// ReadAll reads every remaining top-level expression from the buffer.
func (b *TokenBuffer) ReadAll() ([]values.Value, error) {
	var exprs []values.Value
	for !b.Empty() {
		v, err := b.ReadNext()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, v)
	}
	return exprs, nil
}

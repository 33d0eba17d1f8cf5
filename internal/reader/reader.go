package reader

import (
	"strconv"

	"github.com/cwbudde/go-scheme/internal/values"
)

// SyntaxError is raised by ReadFrom for unbalanced parens, a misplaced
// dot, or an unexpected close-paren (spec.md §7's Syntax error kind).
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string { return e.Message }

// errRanOut is a sentinel used internally to signal "need more input",
// distinguished from SyntaxError so TokenBuffer knows to request
// another line rather than discard the buffer (spec.md §4.C).
type errRanOut struct{}

func (errRanOut) Error() string { return "ran out of tokens" }

// ReadFrom consumes one expression from the front of *tokens, leaving
// the remainder (if any) in *tokens. It implements spec.md §4.C's
// reading rules: `(` begins a list (with `. e )` for improper lists),
// `'` reads the next expression as (quote e), `#t`/`#f` become Bool,
// `"..."` tokens become SchemeStr, otherwise int, then float, then an
// interned Symbol.
func ReadFrom(tokens *[]Token) (values.Value, error) {
	if len(*tokens) == 0 {
		return nil, errRanOut{}
	}
	tok := (*tokens)[0]
	*tokens = (*tokens)[1:]

	switch tok.Text {
	case "(":
		return readList(tokens, tok.Pos)
	case ")":
		return nil, &SyntaxError{Message: "unexpected )", Pos: tok.Pos}
	case "'":
		e, err := ReadFrom(tokens)
		if err != nil {
			return nil, err
		}
		return values.NewList(values.SymQuote, e), nil
	case "#t":
		return values.True, nil
	case "#f":
		return values.False, nil
	case `#\space`:
		return values.Intern("space"), nil
	default:
		return readAtom(tok), nil
	}
}

func readList(tokens *[]Token, openPos Position) (values.Value, error) {
	var elems []values.Value
	for {
		if len(*tokens) == 0 {
			return nil, errRanOut{}
		}
		if (*tokens)[0].Text == ")" {
			*tokens = (*tokens)[1:]
			return values.NewList(elems...), nil
		}
		if (*tokens)[0].Text == "." {
			*tokens = (*tokens)[1:]
			tail, err := ReadFrom(tokens)
			if err != nil {
				return nil, err
			}
			if len(*tokens) == 0 {
				return nil, errRanOut{}
			}
			if (*tokens)[0].Text != ")" {
				return nil, &SyntaxError{Message: ") is expected", Pos: (*tokens)[0].Pos}
			}
			*tokens = (*tokens)[1:]
			return consList(elems, tail), nil
		}
		e, err := ReadFrom(tokens)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
}

func consList(elems []values.Value, tail values.Value) values.Value {
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = &values.Pair{Car: elems[i], Cdr: result}
	}
	return result
}

func readAtom(tok Token) values.Value {
	text := tok.Text
	if len(text) > 0 && text[0] == '"' {
		return values.SchemeStr{Val: text[1:]}
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return values.Int{Val: n}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return values.Float{Val: f}
	}
	return values.Intern(text)
}

// NeedsMoreInput reports whether err signals that ReadFrom ran out of
// tokens mid-expression (as opposed to a genuine syntax error).
func NeedsMoreInput(err error) bool {
	_, ok := err.(errRanOut)
	return ok
}

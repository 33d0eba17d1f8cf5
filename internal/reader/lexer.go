// Package reader implements the s-expression lexer and reader described
// in spec.md §4.C: it converts source text into value-level
// s-expressions, supporting the REPL's incremental (line-at-a-time)
// input mode.
package reader

import "strings"

// Position is a token's (1-based) source location, threaded through so
// syntax errors can be reported with a source snippet and caret
// (SPEC_FULL.md §4.C).
type Position struct {
	Line   int
	Column int
}

// Token is one lexical token together with the position of its first
// character.
type Token struct {
	Text string
	Pos  Position
}

// Tokenize splits source text into tokens, following spec.md §4.C's
// four-step recipe:
//  1. split on lines; within each line split by `"` so odd-indexed
//     segments are string literals (never tokenized further);
//  2. strip `;`-to-end-of-line comments on non-string segments;
//  3. surround `(`, `)`, `'` with whitespace;
//  4. split on whitespace, restoring string literals in order.
func Tokenize(source string, startLine int) []Token {
	var tokens []Token
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNo := startLine + i
		tokens = append(tokens, tokenizeLine(line, lineNo)...)
	}
	return tokens
}

func tokenizeLine(line string, lineNo int) []Token {
	segments := strings.Split(line, "\"")
	var literals []string
	var parts []string
	for i, seg := range segments {
		if i%2 == 1 {
			// String literal segment: record it, untouched, and leave a
			// single-token placeholder in the non-string stream so that
			// whitespace splitting treats the whole literal as one token.
			literals = append(literals, "\""+seg)
			parts = append(parts, "#s")
		} else {
			parts = append(parts, stripComment(seg))
		}
	}
	joined := strings.Join(parts, " ")
	joined = strings.ReplaceAll(joined, "'", " ' ")
	joined = strings.ReplaceAll(joined, "(", " ( ")
	joined = strings.ReplaceAll(joined, ")", " ) ")

	var tokens []Token
	litIdx := 0
	// Track a running column by re-scanning the original line for each
	// emitted token's first occurrence at or after the cursor; this is
	// adequate for the error-reporting use case (pointing near, not
	// byte-exact, the offending token) without complicating the
	// string-literal/comment splitting above.
	cursor := 0
	for _, tok := range strings.Fields(joined) {
		text := tok
		if tok == "#s" {
			text = literals[litIdx]
			litIdx++
		}
		col := locate(line, text, cursor)
		cursor = col - 1 + len(text)
		tokens = append(tokens, Token{Text: text, Pos: Position{Line: lineNo, Column: col}})
	}
	return tokens
}

// stripComment removes a `;`-to-end-of-line comment from a non-string
// segment.
func stripComment(s string) string {
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// locate returns a 1-based column estimate for text's first appearance
// in line at or after the 0-based cursor.
func locate(line, text string, cursor int) int {
	if text == "" {
		return cursor + 1
	}
	needle := text
	if len(needle) > 0 && needle[0] == '"' {
		needle = needle[:1]
	}
	idx := strings.Index(line[min(cursor, len(line)):], needle)
	if idx < 0 {
		return cursor + 1
	}
	return cursor + idx + 1
}

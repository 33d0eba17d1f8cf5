package values

import "strings"

// Stringify converts a Value to its textual representation. With quote
// true, strings are printed surrounded by double quotes (the REPL's
// default); with quote false, strings are printed raw (what `display`
// uses). Improper lists are rendered with dotted-pair notation.
func Stringify(v Value, quote bool) string {
	switch t := v.(type) {
	case SchemeStr:
		if quote {
			return quoteString(t.Val)
		}
		return t.Val
	case Nil:
		return "()"
	case *Pair:
		return stringifyPair(t, quote)
	case *Closure:
		return "#<closure:" + Stringify(t.Params, quote) + ":" +
			Stringify(t.Body, quote) + ":" + stringifyEnv(t.Env, quote) + ">"
	default:
		return v.String()
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
	return b.String()
}

// stringifyPair renders a (possibly improper) list.
func stringifyPair(p *Pair, quote bool) string {
	var parts []string
	var cur Value = p
	for {
		switch t := cur.(type) {
		case *Pair:
			parts = append(parts, Stringify(t.Car, quote))
			cur = t.Cdr
		case Nil:
			return "(" + strings.Join(parts, " ") + ")"
		default:
			parts = append(parts, ".", Stringify(t, quote))
			return "(" + strings.Join(parts, " ") + ")"
		}
	}
}

// stringifyEnv renders an environment chain for display in error
// contexts and closure printing: one token per binding (its symbol
// name), "|" for a frame-top marker, stopping early at GlobalEnv.
func stringifyEnv(e *Env, quote bool) string {
	var parts []string
	for node := e; node != nil; node = node.Next {
		if node == GlobalEnv {
			parts = append(parts, "GlobalEnv")
			break
		}
		if node.IsMarker() {
			parts = append(parts, "|")
		} else {
			parts = append(parts, node.Sym.Name)
		}
	}
	return "#<" + strings.Join(parts, " ") + ">"
}

// GlobalEnv, when set by builtins.NewGlobalEnv, lets stringifyEnv
// truncate long chains instead of printing the whole global frame.
var GlobalEnv *Env

// Package reader turns source text into the object tree consumed by the
// compiler. It understands integers, floats, strings, symbols, nil and t,
// proper and dotted lists, the quote shorthand and line comments.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zbelial/rune/lang/types"
)

// Read parses the first form in src.
func Read(src string) (types.Value, error) {
	r := &reader{src: src}
	r.skipSpace()
	if r.eof() {
		return nil, r.errorf("no form in input")
	}
	return r.form()
}

// ReadAll parses every form in src.
func ReadAll(src string) ([]types.Value, error) {
	r := &reader{src: src}
	var forms []types.Value
	for {
		r.skipSpace()
		if r.eof() {
			return forms, nil
		}
		form, err := r.form()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
}

type reader struct {
	src string
	pos int
}

func (r *reader) eof() bool  { return r.pos >= len(r.src) }
func (r *reader) peek() byte { return r.src[r.pos] }
func (r *reader) next() byte { b := r.src[r.pos]; r.pos++; return b }

func (r *reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("offset %d: %s", r.pos, fmt.Sprintf(format, args...))
}

func (r *reader) skipSpace() {
	for !r.eof() {
		switch r.peek() {
		case ' ', '\t', '\n', '\r':
			r.pos++
		case ';':
			for !r.eof() && r.peek() != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) form() (types.Value, error) {
	switch r.peek() {
	case '(':
		return r.list()
	case ')':
		return nil, r.errorf("unexpected )")
	case '\'':
		r.pos++
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf("quote requires a form")
		}
		quoted, err := r.form()
		if err != nil {
			return nil, err
		}
		return types.List(types.Intern("quote"), quoted), nil
	case '"':
		return r.string()
	}
	return r.atom()
}

func (r *reader) list() (types.Value, error) {
	r.pos++ // consume (
	var elems []types.Value
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf("unterminated list")
		}
		if r.peek() == ')' {
			r.pos++
			return types.List(elems...), nil
		}
		// a lone dot ends a proper prefix with an explicit cdr
		if r.peek() == '.' && r.dotted() {
			r.pos++
			r.skipSpace()
			if r.eof() {
				return nil, r.errorf("unterminated dotted list")
			}
			cdr, err := r.form()
			if err != nil {
				return nil, err
			}
			r.skipSpace()
			if r.eof() || r.peek() != ')' {
				return nil, r.errorf("expected ) after dotted cdr")
			}
			r.pos++
			if len(elems) == 0 {
				return nil, r.errorf("dotted list with no car")
			}
			res := cdr
			for i := len(elems) - 1; i >= 0; i-- {
				res = types.NewCons(elems[i], res)
			}
			return res, nil
		}
		elem, err := r.form()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

// dotted reports whether the dot at the current position stands alone
// rather than starting a number or symbol such as .5 or .foo.
func (r *reader) dotted() bool {
	if r.pos+1 >= len(r.src) {
		return true
	}
	return isDelim(r.src[r.pos+1])
}

func (r *reader) string() (types.Value, error) {
	r.pos++ // consume "
	var sb strings.Builder
	for {
		if r.eof() {
			return nil, r.errorf("unterminated string")
		}
		b := r.next()
		switch b {
		case '"':
			return types.String(sb.String()), nil
		case '\\':
			if r.eof() {
				return nil, r.errorf("unterminated escape")
			}
			switch esc := r.next(); esc {
			case '"', '\\':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return nil, r.errorf("unknown escape \\%c", esc)
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func (r *reader) atom() (types.Value, error) {
	start := r.pos
	for !r.eof() && !isDelim(r.peek()) {
		r.pos++
	}
	tok := r.src[start:r.pos]
	switch tok {
	case "nil":
		return types.Nil, nil
	case "t":
		return types.True, nil
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return types.Int(i), nil
	}
	if strings.ContainsAny(tok, ".eE") {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return types.Float(f), nil
		}
	}
	return types.Intern(tok), nil
}

func isDelim(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '(', ')', '"', ';', '\'':
		return true
	}
	return false
}

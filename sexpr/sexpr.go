// Package sexpr renders While syntax trees as s-expressions and reads them
// back.
//
// The notation mirrors the tree exactly:
//
//	skip  (:= x e)  (; s1 s2)  (if b s1 s2)  (while 3:1 b s)
//	true  false  (! b)  (& b1 b2)  (< a1 a2)  (= a1 a2)
//	42  -5  x  (+ a1 a2)  (- a1 a2)  (* a1 a2)  (/ a1 a2)
//
// A # starts a comment that runs to the end of the line.
package sexpr

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errUnterminatedList = errors.New("unterminated list")

// value is an untyped s-expression: either an atom or a list.
type value struct {
	atom   string
	list   []value
	isList bool
	offset int
}

func atom(text string) value {
	return value{atom: text}
}

func list(items ...value) value {
	return value{list: items, isList: true}
}

func (v value) String() string {
	if !v.isList {
		return v.atom
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range v.list {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (v value) head() string {
	if !v.isList || len(v.list) == 0 || v.list[0].isList {
		return ""
	}
	return v.list[0].atom
}

type runeWidth struct {
	r rune
	w int
}

type runeSource interface {
	read() (rune, int, error)
}

type scanner struct {
	src    runeSource
	undo   []runeWidth
	offset int
}

func newScanner(src runeSource) *scanner {
	return &scanner{src: src}
}

func (s *scanner) read() (rune, int, error) {
	if len(s.undo) > 0 {
		last := s.undo[len(s.undo)-1]
		s.undo = s.undo[:len(s.undo)-1]
		s.offset += last.w
		return last.r, last.w, nil
	}
	r, w, err := s.src.read()
	if err != nil {
		return 0, 0, err
	}
	s.offset += w
	return r, w, nil
}

func (s *scanner) unread(r rune, w int) {
	s.undo = append(s.undo, runeWidth{r: r, w: w})
	s.offset -= w
}

func (s *scanner) peek() (rune, int, error) {
	r, w, err := s.read()
	if err != nil {
		return 0, 0, err
	}
	s.unread(r, w)
	return r, w, nil
}

func (s *scanner) skipWhitespace() error {
	for {
		r, w, err := s.read()
		if err != nil {
			return err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '#':
			if err := s.skipLine(); err != nil {
				return err
			}
			continue
		default:
			s.unread(r, w)
			return nil
		}
	}
}

func (s *scanner) skipLine() error {
	for {
		r, _, err := s.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func readExpr(sc *scanner) (value, error) {
	start := sc.offset
	r, w, err := sc.read()
	if err != nil {
		return value{}, err
	}
	switch r {
	case '(':
		v, err := readList(sc)
		v.offset = start
		return v, err
	case ')':
		return value{}, fmt.Errorf("offset %d: unexpected )", start)
	default:
		sc.unread(r, w)
		return readAtom(sc)
	}
}

func readList(sc *scanner) (value, error) {
	var elems []value
	for {
		if err := sc.skipWhitespace(); err != nil {
			if errors.Is(err, io.EOF) {
				return value{}, errUnterminatedList
			}
			return value{}, err
		}
		next, _, err := sc.peek()
		if err != nil {
			return value{}, err
		}
		if next == ')' {
			if _, _, err := sc.read(); err != nil {
				return value{}, err
			}
			return list(elems...), nil
		}
		elem, err := readExpr(sc)
		if err != nil {
			return value{}, err
		}
		elems = append(elems, elem)
	}
}

func readAtom(sc *scanner) (value, error) {
	start := sc.offset
	var builder strings.Builder
	for {
		r, w, err := sc.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return value{}, err
		}
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '#' {
			sc.unread(r, w)
			break
		}
		builder.WriteRune(r)
	}
	if builder.Len() == 0 {
		return value{}, fmt.Errorf("offset %d: unexpected token", start)
	}
	v := atom(builder.String())
	v.offset = start
	return v, nil
}

// readOne reads exactly one s-expression; anything but comments after it
// is an error.
func readOne(sc *scanner) (value, error) {
	if err := sc.skipWhitespace(); err != nil {
		if errors.Is(err, io.EOF) {
			return value{}, errors.New("empty input")
		}
		return value{}, err
	}
	v, err := readExpr(sc)
	if err != nil {
		return value{}, err
	}
	if err := sc.skipWhitespace(); err != nil && !errors.Is(err, io.EOF) {
		return value{}, err
	}
	if _, _, err := sc.peek(); err == nil {
		return value{}, fmt.Errorf("offset %d: unexpected text after expression", sc.offset)
	}
	return v, nil
}

type stringSource struct {
	src string
	pos int
}

func newStringSource(src string) *stringSource {
	return &stringSource{src: src}
}

func (ss *stringSource) read() (rune, int, error) {
	if ss.pos >= len(ss.src) {
		return 0, 0, io.EOF
	}
	r, w := utf8.DecodeRuneInString(ss.src[ss.pos:])
	if r == utf8.RuneError && w == 1 {
		return 0, 0, fmt.Errorf("invalid UTF-8 encoding at byte %d", ss.pos)
	}
	ss.pos += w
	return r, w, nil
}

package vmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// tokenType represents a type of a token.
type tokenType int

// token types.
const (
	tokEOF    tokenType = iota // End of input
	tokLBrace                  // Left brace
	tokRBrace                  // Right brace
	tokString                  // Quoted string
	tokWord                    // Bare word
)

// token represents a token in the VMT file.
type token struct {
	Lit    string    // Literal value of the token
	Type   tokenType // Type of the token
	Offset int       // Byte offset of the token
	Line   int       // Line number of the token
	Col    int       // Column number of the token
}

// lexer represents a lexer for the VMT file.
type lexer struct {
	r    *bufio.Reader // Reader for the input
	pos  position      // Position of the current character
	ch   rune          // Current character
	off  int           // Byte offset of the current character
	next int           // Byte offset after the current character
	opt  ParseOptions  // Options for the lexer
	eof  bool          // End of input
}

// position represents a position in the input.
type position struct {
	line int // Line number
	col  int // Column number
}

// newLexer creates a new lexer for the VMT file.
func newLexer(r io.Reader, opt ParseOptions) *lexer {
	l := &lexer{r: bufio.NewReader(r), opt: opt, pos: position{line: 1, col: 0}}
	l.read()
	if l.ch == 0xFEFF {
		// Skip UTF-8 BOM if present.
		l.read()
	}

	return l
}

// nextToken returns the next token from the VMT file.
func (l *lexer) nextToken() (token, error) {
	l.skipWhitespace()
	if l.eof {
		return token{Type: tokEOF, Offset: l.off, Line: l.pos.line, Col: l.pos.col}, nil
	}

	startOff, startLine, startCol := l.off, l.pos.line, l.pos.col

	switch l.ch {
	case '{':
		l.read()
		return token{Type: tokLBrace, Lit: "{", Offset: startOff, Line: startLine, Col: startCol}, nil
	case '}':
		l.read()
		return token{Type: tokRBrace, Lit: "}", Offset: startOff, Line: startLine, Col: startCol}, nil
	case '"':
		lit, err := l.readString(startOff)
		return token{Type: tokString, Lit: lit, Offset: startOff, Line: startLine, Col: startCol}, err

	default:
		lit := l.readWord()
		return token{Type: tokWord, Lit: lit, Offset: startOff, Line: startLine, Col: startCol}, nil
	}
}

// read reads the next character from the VMT file.
func (l *lexer) read() {
	ch, size, err := l.r.ReadRune()
	if err != nil {
		l.eof = true
		l.ch = 0
		l.off = l.next
		return
	}

	if ch == '\n' {
		l.pos.line++
		l.pos.col = 0
	} else {
		l.pos.col++
	}

	l.ch = ch
	l.off = l.next
	l.next += size
}

// peek returns the next character from the VMT file without consuming it.
func (l *lexer) peek() rune {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0
	}

	_ = l.r.UnreadRune()
	return ch
}

// skipWhitespace skips whitespace and line comments.
func (l *lexer) skipWhitespace() {
	for {
		for unicode.IsSpace(l.ch) {
			l.read()
			if l.eof {
				return
			}
		}

		// Support // comments. Comments are never recognized inside quotes.
		if !l.opt.DisableComments && l.ch == '/' && l.peek() == '/' {
			l.read()
			l.read()
			for l.ch != '\n' && !l.eof {
				l.read()
			}
			continue
		}
		break
	}
}

// readWord reads a bare word from the VMT file.
func (l *lexer) readWord() string {
	var b strings.Builder
	for !l.eof && !unicode.IsSpace(l.ch) && l.ch != '{' && l.ch != '}' && l.ch != '"' {
		if !l.opt.DisableComments && l.ch == '/' && l.peek() == '/' {
			break
		}
		b.WriteRune(l.ch)
		l.read()
	}

	return b.String()
}

// readString reads a quoted string from the VMT file.
// The format has no escape sequences: a '"' always closes the string.
func (l *lexer) readString(startOff int) (string, error) {
	l.read() // consume opening quote
	var b strings.Builder
	for {
		if l.eof {
			return "", l.errorf(startOff, "unterminated quoted string")
		}

		if l.ch == '"' {
			l.read()
			break
		}

		b.WriteRune(l.ch)
		l.read()
	}

	return b.String(), nil
}

// errorf formats an error message and returns an error.
func (l *lexer) errorf(off int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d (%d:%d): %s",
		ErrMalformed, off, l.pos.line, l.pos.col, fmt.Sprintf(format, args...))
}

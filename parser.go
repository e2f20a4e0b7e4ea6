package vmt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse parses a VMT document from bytes.
func Parse(data []byte, opt *ParseOptions) (*Document, error) {
	return Decode(bytes.NewReader(data), opt)
}

// Decode parses a VMT document from reader.
func Decode(r io.Reader, opt *ParseOptions) (*Document, error) {
	popt := opt.normalize()
	p := newParser(r, popt)
	return p.parseDocument()
}

// DecodeFile parses a VMT document from a file.
func DecodeFile(path string, opt *ParseOptions) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, opt)
}

// parser represents a parser for the VMT file.
type parser struct {
	l   *lexer       // Lexer for the VMT file
	buf token        // Buffered token
	has bool         // Has buffered token
	opt ParseOptions // Options for the parser
}

// newParser creates a new parser for the VMT file.
func newParser(r io.Reader, opt ParseOptions) *parser {
	return &parser{l: newLexer(r, opt), opt: opt}
}

// next returns the next token from the VMT file.
func (p *parser) next() (token, error) {
	if p.has {
		p.has = false
		return p.buf, nil
	}

	return p.l.nextToken()
}

// peek returns the next token from the VMT file without consuming it.
func (p *parser) peek() (token, error) {
	if p.has {
		return p.buf, nil
	}

	tok, err := p.l.nextToken()
	if err != nil {
		return tok, err
	}

	p.buf = tok
	p.has = true
	return tok, nil
}

// parseDocument parses the root of a VMT document. The first significant
// token decides the shape: the word "patch" (case-insensitive) introduces
// a patch block, anything else is a shader name introducing a standard
// block.
func (p *parser) parseDocument() (*Document, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case tokEOF:
		return nil, p.errorf(tok, "empty document")
	case tokWord, tokString:
		if strings.EqualFold(tok.Lit, "patch") {
			return p.parsePatch()
		}
		return p.parseStandard(tok.Lit)
	default:
		return nil, p.errorf(tok, "expected shader name or 'patch'")
	}
}

// parseStandard parses the body of a standard document.
func (p *parser) parseStandard(shader string) (*Document, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	doc := &Document{Kind: KindStandard, Shader: shader}
	if err := p.parseParamBody(&doc.Params); err != nil {
		return nil, err
	}

	return doc, nil
}

// parsePatch parses the body of a patch document: an include path plus
// insert and replace parameter sections, in any order. Sections that are
// not recognized are skipped by brace matching.
func (p *parser) parsePatch() (*Document, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	doc := &Document{Kind: KindPatch}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case tokRBrace:
			if err := doc.Check(); err != nil {
				return nil, err
			}
			return doc, nil

		case tokEOF:
			return nil, p.errorf(tok, "missing closing brace in patch block")

		case tokLBrace:
			// Stray nested block, skip it whole.
			if err := p.skipBlock(tok); err != nil {
				return nil, err
			}

		case tokWord, tokString:
			switch {
			case strings.EqualFold(tok.Lit, "include"):
				path, err := p.next()
				if err != nil {
					return nil, err
				}
				if path.Type != tokString && path.Type != tokWord {
					return nil, p.errorf(path, "expected include path")
				}
				doc.Include = path.Lit

			case strings.EqualFold(tok.Lit, "insert"):
				if _, err := p.expect(tokLBrace); err != nil {
					return nil, err
				}
				if err := p.parseParamBody(&doc.Insert); err != nil {
					return nil, err
				}

			case strings.EqualFold(tok.Lit, "replace"):
				if _, err := p.expect(tokLBrace); err != nil {
					return nil, err
				}
				if err := p.parseParamBody(&doc.Replace); err != nil {
					return nil, err
				}

			default:
				if err := p.skipUnknown(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// parseParamBody reads key/value pairs until the closing brace. The
// opening brace has already been consumed. Keys are '$'-prefixed quoted or
// bare tokens; anything else at this level is tolerated and ignored for
// forward compatibility, matching the lenient behavior of the original
// format consumers.
func (p *parser) parseParamBody(ps *ParameterSet) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		switch tok.Type {
		case tokRBrace:
			return nil

		case tokEOF:
			return p.errorf(tok, "missing closing brace")

		case tokLBrace:
			if err := p.skipBlock(tok); err != nil {
				return err
			}

		case tokWord, tokString:
			if strings.HasPrefix(tok.Lit, "$") {
				val, err := p.next()
				if err != nil {
					return err
				}
				if val.Type != tokString && val.Type != tokWord {
					return p.errorf(val, "missing value for %q", tok.Lit)
				}
				// Duplicate keys: last value wins, first position kept.
				ps.Set(tok.Lit, val.Lit)
				continue
			}

			if err := p.skipUnknown(); err != nil {
				return err
			}
		}
	}
}

// skipUnknown discards unrecognized content after its introducing token: a
// whole block when a brace follows, otherwise a single value token.
func (p *parser) skipUnknown() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	switch tok.Type {
	case tokLBrace:
		open, _ := p.next()
		return p.skipBlock(open)
	case tokWord, tokString:
		_, _ = p.next()
		return nil
	default:
		return nil
	}
}

// skipBlock discards tokens until the brace opened by open is balanced.
func (p *parser) skipBlock(open token) error {
	depth := 1
	for depth > 0 {
		tok, err := p.next()
		if err != nil {
			return err
		}

		switch tok.Type {
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
		case tokEOF:
			return p.errorf(open, "unbalanced braces")
		}
	}

	return nil
}

// expect expects a token of the given type.
func (p *parser) expect(tt tokenType) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s", tokenName(tt))
	}

	return tok, nil
}

// errorf formats an error.
func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d (%d:%d): %s",
		ErrMalformed, tok.Offset, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

// tokenName returns the name of a token.
func tokenName(tt tokenType) string {
	switch tt {
	case tokEOF:
		return "EOF"
	case tokLBrace:
		return "{"
	case tokRBrace:
		return "}"
	case tokString:
		return "string"
	case tokWord:
		return "word"
	default:
		return "token"
	}
}

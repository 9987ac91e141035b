// Package lexer implements the two-phase hand-written scanner for Ramsey
// source text: phase 1 produces preprocessing tokens (identifier,
// number, number_hex, string, puncop, eol); phase 2 resolves those into
// the lexical tokens the parser consumes, applying keyword lookup and
// maximal-munch re-segmentation of punctuator runs.
package lexer

import (
	"strings"

	"github.com/rgeorge/ramseyc/internal/errors"
	"github.com/rgeorge/ramseyc/internal/token"
)

// ppKind is the category of a phase-1 preprocessing token.
type ppKind int

const (
	ppIdent ppKind = iota
	ppNumber
	ppNumberHex
	ppString
	ppPuncOp
	ppEOL
)

// ppToken is a phase-1 preprocessing token: a coarser-grained unit than
// the final lexical token, not yet resolved against the keyword table or
// re-segmented for maximal munch.
type ppToken struct {
	kind   ppKind
	lexeme string
}

// Lexer scans Ramsey source text into a flat sequence of lexical tokens.
type Lexer struct {
	src string
	pos int
}

// New creates a Lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize runs both lexing phases and returns the full lexical token
// sequence, terminated by an EOF token. It fails fast: the first
// malformed token aborts scanning.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	pp, err := l.lexPreprocessing()
	if err != nil {
		return nil, err
	}
	return resolve(pp)
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// lexPreprocessing implements phase 1.
func (l *Lexer) lexPreprocessing() ([]ppToken, error) {
	var out []ppToken

	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		switch {
		case ch == '\n':
			out = append(out, ppToken{kind: ppEOL})
			l.pos++

		case ch == '\r' || ch == ' ' || ch == '\t':
			l.pos++

		case ch == '#':
			l.pos++
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}

		case isAlpha(ch):
			start := l.pos
			l.pos++
			for l.pos < len(l.src) && isAlpha(l.src[l.pos]) {
				l.pos++
			}
			out = append(out, ppToken{kind: ppIdent, lexeme: l.src[start:l.pos]})

		case isDigit(ch):
			tok, err := l.lexNumber()
			if err != nil {
				return nil, err
			}
			out = append(out, tok)

		case ch == '"':
			tok, err := l.lexString()
			if err != nil {
				return nil, err
			}
			out = append(out, tok)

		case token.IsPunctChar(rune(ch)):
			start := l.pos
			l.pos++
			for l.pos < len(l.src) && token.IsPunctChar(rune(l.src[l.pos])) {
				l.pos++
			}
			out = append(out, ppToken{kind: ppPuncOp, lexeme: l.src[start:l.pos]})

		default:
			return nil, errors.Lex("stray '%c' character", ch)
		}
	}

	return out, nil
}

func (l *Lexer) lexNumber() (ppToken, error) {
	start := l.pos

	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		l.pos += 2
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		return ppToken{kind: ppNumberHex, lexeme: l.src[start:l.pos]}, nil
	}

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return ppToken{kind: ppNumber, lexeme: l.src[start:l.pos]}, nil
}

func (l *Lexer) lexString() (ppToken, error) {
	l.pos++ // consume opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return ppToken{}, errors.Lex("unterminated string literal")
		}
		ch := l.src[l.pos]
		switch ch {
		case '"':
			l.pos++
			return ppToken{kind: ppString, lexeme: sb.String()}, nil
		case '\n':
			return ppToken{}, errors.Lex("newline in string literal")
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return ppToken{}, errors.Lex("unterminated string literal")
			}
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '0':
				sb.WriteByte(0)
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return ppToken{}, errors.Lex("unknown escape character '%c'", esc)
			}
			l.pos++
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
}

// resolve implements phase 2: keyword lookup and maximal-munch
// re-segmentation of punctuator runs.
func resolve(pp []ppToken) ([]token.Token, error) {
	out := make([]token.Token, 0, len(pp)+1)

	for _, t := range pp {
		switch t.kind {
		case ppIdent:
			kind := token.LookupIdent(t.lexeme)
			if kind == token.Ident {
				out = append(out, token.Token{Kind: token.Ident, Lexeme: t.lexeme})
			} else if kind == token.BoolTrue || kind == token.BoolFalse {
				out = append(out, token.Token{Kind: kind, Lexeme: t.lexeme})
			} else {
				out = append(out, token.Token{Kind: kind})
			}

		case ppNumber:
			out = append(out, token.Token{Kind: token.Number, Lexeme: t.lexeme})

		case ppNumberHex:
			out = append(out, token.Token{Kind: token.NumberHex, Lexeme: t.lexeme})

		case ppString:
			out = append(out, token.Token{Kind: token.String, Lexeme: t.lexeme})

		case ppEOL:
			out = append(out, token.Token{Kind: token.EOL})

		case ppPuncOp:
			resegmented, err := resegmentPunctRun(t.lexeme)
			if err != nil {
				return nil, err
			}
			out = append(out, resegmented...)
		}
	}

	out = append(out, token.Token{Kind: token.EOF})
	return out, nil
}

// resegmentPunctRun applies maximal munch to a raw run of punctuator
// characters, repeatedly consuming the longest recognized operator
// prefix until the run is exhausted.
func resegmentPunctRun(run string) ([]token.Token, error) {
	var out []token.Token

	for len(run) > 0 {
		matched := false
		maxLen := token.MaxOperatorLen
		if maxLen > len(run) {
			maxLen = len(run)
		}
		for n := maxLen; n >= 1; n-- {
			if kind, ok := token.LookupOperator(run[:n]); ok {
				out = append(out, token.Token{Kind: kind})
				run = run[n:]
				matched = true
				break
			}
		}
		if !matched {
			return nil, errors.Lex("couldn't process punctuator run")
		}
	}

	return out, nil
}

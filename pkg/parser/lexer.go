package parser

import (
	"strings"

	"github.com/leapstack-labs/rowcap/pkg/token"
)

// eof is the end-of-input sentinel. It is negative so the case-normalizing
// fold can tell it apart from real characters.
const eof = -1

// Lexer tokenizes SQL input.
//
// Every character examined for matching passes through FoldUpper, so the
// grammar sees uppercase regardless of what the caller typed. Token literals
// are sliced from the original input and keep their original case.
type Lexer struct {
	input   string
	pos     int // current position in input
	readPos int // reading position (after current char)
	ch      int // current case-normalized char under examination
	line    int // current line number (1-based)
	col     int // current column number (1-based)

	sink *ErrorSink
}

// NewLexer creates a new Lexer for the given input, reporting lexical
// errors into sink.
func NewLexer(input string, sink *ErrorSink) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
		sink:  sink,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = eof
	} else {
		l.ch = FoldUpper(int(l.input[l.readPos]))
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next case-normalized character without advancing.
func (l *Lexer) peekChar() int {
	if l.readPos >= len(l.input) {
		return eof
	}
	return FoldUpper(int(l.input[l.readPos]))
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	var tok token.Token
	tok.Pos = pos

	switch l.ch {
	case eof:
		tok.Type = token.EOF
		tok.Literal = ""
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '=':
		tok = l.newToken(token.EQ, "=")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			l.sink.Record(pos, ErrIllegalCharacter, byte(l.ch))
			tok = l.newToken(token.ILLEGAL, string(rune(l.ch)))
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.DPIPE, Literal: "||", Pos: pos}
		} else {
			l.sink.Record(pos, ErrIllegalCharacter, byte(l.ch))
			tok = l.newToken(token.ILLEGAL, string(rune(l.ch)))
		}
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ';':
		tok = l.newToken(token.SEMI, ";")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '\'':
		tok.Type = token.STRING
		tok.Literal = l.readString(pos)
		tok.Pos = pos
		return tok
	case '"':
		// Quoted identifier (ANSI style)
		tok.Type = token.IDENT
		tok.Literal = l.readQuotedIdentifier(pos)
		tok.Pos = pos
		return tok
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			var norm string
			tok.Literal, norm = l.readIdentifier()
			tok.Type = token.LookupIdent(norm)
			tok.Pos = pos
			return tok
		case isDigit(l.ch):
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.Pos = pos
			return tok
		default:
			l.sink.Record(pos, ErrIllegalCharacter, byte(l.ch))
			tok = l.newToken(token.ILLEGAL, string(rune(l.ch)))
		}
	}

	l.readChar()
	return tok
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// skipWhitespaceAndComments skips whitespace and comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		// Line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != eof {
				l.readChar()
			}
			continue
		}

		// Block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			for l.ch != eof {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip '*'
					l.readChar() // skip '/'
					break
				}
				l.readChar()
			}
			continue
		}

		break
	}
}

// readString reads a single-quoted string literal.
// Handles doubled single quotes as escape: 'it''s' -> it's
func (l *Lexer) readString(pos token.Position) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		if l.ch == eof {
			l.sink.Record(pos, ErrUnterminatedString)
			break
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				result.WriteByte('\'')
				l.readChar() // skip first quote
				l.readChar() // skip second quote
			} else {
				l.readChar() // skip closing quote
				break
			}
		} else {
			result.WriteByte(l.input[l.pos])
			l.readChar()
		}
	}
	return result.String()
}

// readQuotedIdentifier reads a double-quoted identifier.
// Handles doubled double quotes as escape: "col""name" -> col"name
func (l *Lexer) readQuotedIdentifier(pos token.Position) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		if l.ch == eof {
			l.sink.Record(pos, ErrUnterminatedString)
			break
		}
		if l.ch == '"' {
			if l.peekChar() == '"' {
				result.WriteByte('"')
				l.readChar() // skip first quote
				l.readChar() // skip second quote
			} else {
				l.readChar() // skip closing quote
				break
			}
		} else {
			result.WriteByte(l.input[l.pos])
			l.readChar()
		}
	}
	return result.String()
}

// readIdentifier reads an unquoted identifier. It returns both the original
// source text and the case-normalized spelling used for keyword lookup.
func (l *Lexer) readIdentifier() (lit, norm string) {
	start := l.pos
	var folded strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		folded.WriteByte(byte(l.ch))
		l.readChar()
	}
	return l.input[start:l.pos], folded.String()
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part (e.g., 1e10, 1E-5). The fold has already uppercased 'e'.
	if l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is an ASCII letter. The case-normalized view
// only ever yields uppercase letters for a-z input.
func isLetter(ch int) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch int) bool {
	return ch >= '0' && ch <= '9'
}

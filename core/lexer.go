package core

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment
	TokenKeyword   // ISO-10303-21, HEADER, DATA, ENDSEC, IFCSPACE, ...
	TokenInteger   // 123
	TokenReal      // 3.14, 1.0E-5
	TokenString    // 'hello'
	TokenEnum      // .T., .ELEMENT.
	TokenRecordID  // #123
	TokenLParen    // (
	TokenRParen    // )
	TokenComma     // ,
	TokenSemicolon // ;
	TokenEquals    // =
	TokenStar      // *
	TokenDollar    // $
)

// String returns the string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenComment:
		return "Comment"
	case TokenKeyword:
		return "Keyword"
	case TokenInteger:
		return "Integer"
	case TokenReal:
		return "Real"
	case TokenString:
		return "String"
	case TokenEnum:
		return "Enum"
	case TokenRecordID:
		return "RecordID"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenComma:
		return "Comma"
	case TokenSemicolon:
		return "Semicolon"
	case TokenEquals:
		return "Equals"
	case TokenStar:
		return "Star"
	case TokenDollar:
		return "Dollar"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int64 // Position in stream
}

// Lexer performs lexical analysis of STEP physical-file content
type Lexer struct {
	reader *bufio.Reader
	pos    int64
	line   int
	col    int
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		pos:    0,
		line:   1,
		col:    0,
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (*Token, error) {
	l.skipWhitespace()

	b, err := l.peek()
	if err == io.EOF {
		return &Token{Type: TokenEOF, Pos: l.pos}, nil
	}
	if err != nil {
		return nil, err
	}

	// Handle comments /* ... */
	if b == '/' {
		next, err := l.peekN(2)
		if err == nil && len(next) == 2 && next[1] == '*' {
			return l.readComment()
		}
		return nil, fmt.Errorf("unexpected '/' at position %d", l.pos)
	}

	// Handle single-character delimiters
	switch b {
	case '(':
		l.readByte()
		return &Token{Type: TokenLParen, Value: []byte{'('}, Pos: l.pos - 1}, nil
	case ')':
		l.readByte()
		return &Token{Type: TokenRParen, Value: []byte{')'}, Pos: l.pos - 1}, nil
	case ',':
		l.readByte()
		return &Token{Type: TokenComma, Value: []byte{','}, Pos: l.pos - 1}, nil
	case ';':
		l.readByte()
		return &Token{Type: TokenSemicolon, Value: []byte{';'}, Pos: l.pos - 1}, nil
	case '=':
		l.readByte()
		return &Token{Type: TokenEquals, Value: []byte{'='}, Pos: l.pos - 1}, nil
	case '*':
		l.readByte()
		return &Token{Type: TokenStar, Value: []byte{'*'}, Pos: l.pos - 1}, nil
	case '$':
		l.readByte()
		return &Token{Type: TokenDollar, Value: []byte{'$'}, Pos: l.pos - 1}, nil
	case '\'':
		return l.readString()
	case '.':
		return l.readEnum()
	case '#':
		return l.readRecordID()
	}

	// Handle numbers
	if isDigit(b) || b == '-' || b == '+' {
		return l.readNumber()
	}

	// Handle keywords (section markers, record type names)
	if isAlpha(b) {
		return l.readKeyword()
	}

	return nil, fmt.Errorf("unexpected character '%c' at position %d", b, l.pos)
}

// readByte reads a single byte and advances position
func (l *Lexer) readByte() (byte, error) {
	b, err := l.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	l.pos++
	l.col++
	if b == '\n' {
		l.line++
		l.col = 0
	}
	return b, nil
}

// peek looks at the next byte without consuming it
func (l *Lexer) peek() (byte, error) {
	bytes, err := l.reader.Peek(1)
	if err != nil {
		return 0, err
	}
	return bytes[0], nil
}

// peekN looks at the next n bytes without consuming them
func (l *Lexer) peekN(n int) ([]byte, error) {
	return l.reader.Peek(n)
}

// skipWhitespace skips all whitespace characters
func (l *Lexer) skipWhitespace() error {
	for {
		b, err := l.peek()
		if err != nil {
			return err
		}
		if !isWhitespace(b) {
			return nil
		}
		l.readByte()
	}
}

// readComment reads a block comment
func (l *Lexer) readComment() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	// Consume the opening /*
	l.readByte()
	l.readByte()

	for {
		b, err := l.readByte()
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated comment at position %d", startPos)
		}
		if err != nil {
			return nil, err
		}
		if b == '*' {
			next, err := l.peek()
			if err == nil && next == '/' {
				l.readByte()
				break
			}
		}
		buf.WriteByte(b)
	}

	return &Token{Type: TokenComment, Value: buf.Bytes(), Pos: startPos}, nil
}

// readString reads a string literal 'hello'.
// A doubled quote ('') inside the literal encodes a single quote.
func (l *Lexer) readString() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	b, err := l.readByte()
	if err != nil {
		return nil, err
	}
	if b != '\'' {
		return nil, fmt.Errorf("expected quote at position %d", l.pos-1)
	}

	for {
		b, err := l.readByte()
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated string at position %d", startPos)
		}
		if err != nil {
			return nil, err
		}

		if b == '\'' {
			next, err := l.peek()
			if err == nil && next == '\'' {
				// Escaped quote
				l.readByte()
				buf.WriteByte('\'')
				continue
			}
			break
		}

		buf.WriteByte(b)
	}

	return &Token{Type: TokenString, Value: buf.Bytes(), Pos: startPos}, nil
}

// readEnum reads an enumeration literal .ELEMENT. or logical .T./.F./.U.
func (l *Lexer) readEnum() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	b, err := l.readByte()
	if err != nil {
		return nil, err
	}
	if b != '.' {
		return nil, fmt.Errorf("expected '.' at position %d", l.pos-1)
	}

	for {
		b, err := l.readByte()
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated enumeration at position %d", startPos)
		}
		if err != nil {
			return nil, err
		}
		if b == '.' {
			break
		}
		if !isAlpha(b) && !isDigit(b) && b != '_' {
			return nil, fmt.Errorf("invalid enumeration character '%c' at position %d", b, l.pos-1)
		}
		buf.WriteByte(b)
	}

	return &Token{Type: TokenEnum, Value: buf.Bytes(), Pos: startPos}, nil
}

// readRecordID reads a record identifier #123
func (l *Lexer) readRecordID() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	b, err := l.readByte()
	if err != nil {
		return nil, err
	}
	if b != '#' {
		return nil, fmt.Errorf("expected '#' at position %d", l.pos-1)
	}

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isDigit(b) {
			break
		}
		b, _ = l.readByte()
		buf.WriteByte(b)
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("missing record number after '#' at position %d", startPos)
	}

	return &Token{Type: TokenRecordID, Value: buf.Bytes(), Pos: startPos}, nil
}

// readNumber reads an integer or real number.
// Reals may carry a fractional part, an exponent, or both: 1., .5 is not
// valid STEP (the leading digit is required), 1.0E-5 is.
func (l *Lexer) readNumber() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer
	hasDecimal := false
	hasExponent := false

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch {
		case isDigit(b):
			b, _ = l.readByte()
			buf.WriteByte(b)
		case b == '-' || b == '+':
			// Sign is only valid at the start or right after the exponent marker
			if buf.Len() != 0 {
				last := buf.Bytes()[buf.Len()-1]
				if last != 'E' && last != 'e' {
					return &Token{Type: l.numberType(hasDecimal, hasExponent), Value: buf.Bytes(), Pos: startPos}, nil
				}
			}
			b, _ = l.readByte()
			buf.WriteByte(b)
		case b == '.' && !hasDecimal && !hasExponent:
			// Distinguish a fractional part from a trailing enum (12.ELEMENT. never occurs,
			// but 12.) and 12., both end the number at the dot when no digit follows
			next, err := l.peekN(2)
			if err == nil && len(next) == 2 && !isDigit(next[1]) {
				// Trailing dot with no fractional digits: "1." is a valid real
				hasDecimal = true
				b, _ = l.readByte()
				buf.WriteByte(b)
				return &Token{Type: TokenReal, Value: buf.Bytes(), Pos: startPos}, nil
			}
			hasDecimal = true
			b, _ = l.readByte()
			buf.WriteByte(b)
		case (b == 'E' || b == 'e') && !hasExponent && buf.Len() > 0:
			hasExponent = true
			b, _ = l.readByte()
			buf.WriteByte(b)
		default:
			return &Token{Type: l.numberType(hasDecimal, hasExponent), Value: buf.Bytes(), Pos: startPos}, nil
		}
	}

	return &Token{Type: l.numberType(hasDecimal, hasExponent), Value: buf.Bytes(), Pos: startPos}, nil
}

func (l *Lexer) numberType(hasDecimal, hasExponent bool) TokenType {
	if hasDecimal || hasExponent {
		return TokenReal
	}
	return TokenInteger
}

// readKeyword reads a keyword: a section marker or record type name.
// Keywords may contain digits, underscores and hyphens (ISO-10303-21).
func (l *Lexer) readKeyword() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !isAlpha(b) && !isDigit(b) && b != '_' && b != '-' {
			break
		}

		b, _ = l.readByte()
		buf.WriteByte(b)
	}

	return &Token{Type: TokenKeyword, Value: buf.Bytes(), Pos: startPos}, nil
}

// Helper functions

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

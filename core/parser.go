package core

import (
	"fmt"
	"io"
	"strconv"
)

// Parser parses STEP physical-file content from an io.Reader using a Lexer
// for tokenization. It understands the HEADER and DATA sections and produces
// the record table consumed by the reader.
type Parser struct {
	lexer        *Lexer
	currentToken *Token // Current token being processed
	peekToken    *Token // Next token (lookahead)
}

// NewParser creates a new parser for the given reader.
// It initializes the lexer and loads the first two tokens for lookahead.
func NewParser(r io.Reader) (*Parser, error) {
	p := &Parser{
		lexer: NewLexer(r),
	}
	// Load first two tokens
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

// nextToken advances the parser to the next token by shifting the lookahead.
func (p *Parser) nextToken() error {
	p.currentToken = p.peekToken

	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peekToken = token
	return nil
}

// skipComments skips over any consecutive comment tokens.
func (p *Parser) skipComments() error {
	for p.currentToken != nil && p.currentToken.Type == TokenComment {
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile parses a complete exchange file and returns the header fields
// and the DATA section records in file order.
func (p *Parser) ParseFile() (*Header, []*Record, error) {
	if err := p.skipComments(); err != nil {
		return nil, nil, err
	}

	// ISO-10303-21;
	if err := p.expectKeyword("ISO-10303-21"); err != nil {
		return nil, nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, nil, err
	}

	header, err := p.parseHeaderSection()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing header section: %w", err)
	}

	records, err := p.parseDataSection()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing data section: %w", err)
	}

	// The END-ISO-10303-21 terminator is not required: some exporters
	// truncate it, and nothing after the data ENDSEC matters here.

	return header, records, nil
}

// parseHeaderSection parses "HEADER; entity(...); ... ENDSEC;".
// Header entities have no record numbers; only the well-known fields of
// FILE_DESCRIPTION, FILE_NAME and FILE_SCHEMA are retained.
func (p *Parser) parseHeaderSection() (*Header, error) {
	if err := p.expectKeyword("HEADER"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	header := &Header{}

	for {
		if err := p.skipComments(); err != nil {
			return nil, err
		}
		if p.currentToken == nil || p.currentToken.Type == TokenEOF {
			return nil, fmt.Errorf("unexpected EOF in header section")
		}
		if p.currentToken.Type != TokenKeyword {
			return nil, fmt.Errorf("expected header entity, got %v at position %d", p.currentToken.Type, p.currentToken.Pos)
		}

		name := string(p.currentToken.Value)
		if name == "ENDSEC" {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			if err := p.expect(TokenSemicolon); err != nil {
				return nil, err
			}
			return header, nil
		}

		if err := p.nextToken(); err != nil {
			return nil, err
		}
		args, err := p.parseList()
		if err != nil {
			return nil, fmt.Errorf("parsing header entity %s: %w", name, err)
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}

		switch name {
		case "FILE_DESCRIPTION":
			if descs, ok := args.GetList(0); ok {
				for i := 0; i < descs.Len(); i++ {
					if s, ok := descs.GetString(i); ok {
						header.Description = append(header.Description, string(s))
					}
				}
			}
			if s, ok := args.GetString(1); ok {
				header.Implementation = string(s)
			}
		case "FILE_NAME":
			if s, ok := args.GetString(0); ok {
				header.Name = string(s)
			}
		case "FILE_SCHEMA":
			if schemas, ok := args.GetList(0); ok {
				if s, ok := schemas.GetString(0); ok {
					header.Schema = string(s)
				}
			}
		}
	}
}

// parseDataSection parses "DATA; #n=TYPE(...); ... ENDSEC;".
func (p *Parser) parseDataSection() ([]*Record, error) {
	if err := p.expectKeyword("DATA"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	var records []*Record

	for {
		if err := p.skipComments(); err != nil {
			return nil, err
		}
		if p.currentToken == nil || p.currentToken.Type == TokenEOF {
			return nil, fmt.Errorf("unexpected EOF in data section")
		}

		if p.currentToken.Type == TokenKeyword && string(p.currentToken.Value) == "ENDSEC" {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			if err := p.expect(TokenSemicolon); err != nil {
				return nil, err
			}
			return records, nil
		}

		rec, err := p.ParseRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ParseRecord parses a single record definition "#n = TYPE(attr, ...);".
func (p *Parser) ParseRecord() (*Record, error) {
	if err := p.skipComments(); err != nil {
		return nil, err
	}

	if p.currentToken.Type != TokenRecordID {
		return nil, fmt.Errorf("expected record id, got %v at position %d", p.currentToken.Type, p.currentToken.Pos)
	}
	id, err := strconv.Atoi(string(p.currentToken.Value))
	if err != nil {
		return nil, fmt.Errorf("invalid record id: %w", err)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	if err := p.expect(TokenEquals); err != nil {
		return nil, err
	}

	if p.currentToken.Type != TokenKeyword {
		return nil, fmt.Errorf("expected record type for #%d, got %v", id, p.currentToken.Type)
	}
	typeName := string(p.currentToken.Value)
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	attrs, err := p.parseList()
	if err != nil {
		return nil, fmt.Errorf("parsing attributes of #%d=%s: %w", id, typeName, err)
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &Record{ID: id, Type: typeName, Attrs: attrs}, nil
}

// ParseValue parses a single attribute value: a primitive, an enumeration,
// a reference, a nested aggregate, or a typed wrapper like IFCAREAMEASURE(12.5).
func (p *Parser) ParseValue() (Attribute, error) {
	if err := p.skipComments(); err != nil {
		return nil, err
	}

	if p.currentToken == nil {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch p.currentToken.Type {
	case TokenEOF:
		return nil, io.EOF

	case TokenDollar:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return Null{}, nil

	case TokenStar:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return Omitted{}, nil

	case TokenInteger:
		val, err := strconv.ParseInt(string(p.currentToken.Value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return Int(val), nil

	case TokenReal:
		val, err := strconv.ParseFloat(string(p.currentToken.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real number: %w", err)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return Real(val), nil

	case TokenString:
		val := string(p.currentToken.Value)
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return String(val), nil

	case TokenEnum:
		val := string(p.currentToken.Value)
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		// Logical literals come through the same production as enumerations
		switch val {
		case "T":
			return Bool(true), nil
		case "F":
			return Bool(false), nil
		}
		return Enum(val), nil

	case TokenRecordID:
		id, err := strconv.Atoi(string(p.currentToken.Value))
		if err != nil {
			return nil, fmt.Errorf("invalid record reference: %w", err)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return Ref{ID: id}, nil

	case TokenLParen:
		return p.parseList()

	case TokenKeyword:
		return p.parseTyped()

	default:
		return nil, fmt.Errorf("unexpected token type %v at position %d", p.currentToken.Type, p.currentToken.Pos)
	}
}

// parseList parses an aggregate "(a, b, ...)". An empty aggregate "()" yields
// a zero-length, non-nil List.
func (p *Parser) parseList() (List, error) {
	if p.currentToken.Type != TokenLParen {
		return nil, fmt.Errorf("expected '(', got %v at position %d", p.currentToken.Type, p.currentToken.Pos)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	list := List{}
	for {
		if err := p.skipComments(); err != nil {
			return nil, err
		}
		if p.currentToken == nil {
			return nil, fmt.Errorf("unexpected end of input in aggregate")
		}
		if p.currentToken.Type == TokenRParen {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			return list, nil
		}
		if p.currentToken.Type == TokenEOF {
			return nil, fmt.Errorf("unexpected EOF in aggregate")
		}

		value, err := p.ParseValue()
		if err != nil {
			return nil, fmt.Errorf("parsing aggregate element %d: %w", len(list), err)
		}
		list = append(list, value)

		if p.currentToken.Type == TokenComma {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
	}
}

// parseTyped parses a typed value wrapper "TYPENAME(value)".
// Select-type wrapping always carries exactly one inner value.
func (p *Parser) parseTyped() (Attribute, error) {
	name := string(p.currentToken.Value)
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	if p.currentToken.Type != TokenLParen {
		return nil, fmt.Errorf("expected '(' after type name %s at position %d", name, p.tokenPos())
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	value, err := p.ParseValue()
	if err != nil {
		return nil, fmt.Errorf("parsing wrapped value of %s: %w", name, err)
	}

	if p.currentToken.Type != TokenRParen {
		return nil, fmt.Errorf("expected ')' closing %s, got %v", name, p.currentToken.Type)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	return Typed{TypeName: name, Value: value}, nil
}

// expect consumes the current token if it matches the wanted type.
func (p *Parser) expect(tt TokenType) error {
	if err := p.skipComments(); err != nil {
		return err
	}
	if p.currentToken == nil || p.currentToken.Type != tt {
		got := "nil"
		if p.currentToken != nil {
			got = p.currentToken.Type.String()
		}
		return fmt.Errorf("expected %v, got %s", tt, got)
	}
	return p.nextToken()
}

// expectKeyword consumes the current token if it is the named keyword.
func (p *Parser) expectKeyword(name string) error {
	if err := p.skipComments(); err != nil {
		return err
	}
	if p.currentToken == nil || p.currentToken.Type != TokenKeyword || string(p.currentToken.Value) != name {
		return fmt.Errorf("expected keyword %s at position %d", name, p.tokenPos())
	}
	return p.nextToken()
}

func (p *Parser) tokenPos() int64 {
	if p.currentToken == nil {
		return -1
	}
	return p.currentToken.Pos
}

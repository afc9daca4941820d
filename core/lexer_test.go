package core

import (
	"strings"
	"testing"
)

// TestTokenTypeString tests the String method on TokenType
func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		token TokenType
		want  string
	}{
		{TokenEOF, "EOF"},
		{TokenComment, "Comment"},
		{TokenKeyword, "Keyword"},
		{TokenInteger, "Integer"},
		{TokenReal, "Real"},
		{TokenString, "String"},
		{TokenEnum, "Enum"},
		{TokenRecordID, "RecordID"},
		{TokenLParen, "LParen"},
		{TokenRParen, "RParen"},
		{TokenComma, "Comma"},
		{TokenSemicolon, "Semicolon"},
		{TokenEquals, "Equals"},
		{TokenStar, "Star"},
		{TokenDollar, "Dollar"},
	}

	for _, tt := range tests {
		if got := tt.token.String(); got != tt.want {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.token, got, tt.want)
		}
	}
}

// lexAll tokenizes the whole input, failing the test on lexer errors.
func lexAll(t *testing.T, input string) []*Token {
	t.Helper()
	l := NewLexer(strings.NewReader(input))
	var tokens []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken failed: %v", err)
		}
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func TestLexRecordLine(t *testing.T) {
	tokens := lexAll(t, "#12=IFCSPACE('2x3y',#2,'Office',$,*,.ELEMENT.);")

	want := []struct {
		typ   TokenType
		value string
	}{
		{TokenRecordID, "12"},
		{TokenEquals, "="},
		{TokenKeyword, "IFCSPACE"},
		{TokenLParen, "("},
		{TokenString, "2x3y"},
		{TokenComma, ","},
		{TokenRecordID, "2"},
		{TokenComma, ","},
		{TokenString, "Office"},
		{TokenComma, ","},
		{TokenDollar, "$"},
		{TokenComma, ","},
		{TokenStar, "*"},
		{TokenComma, ","},
		{TokenEnum, "ELEMENT"},
		{TokenRParen, ")"},
		{TokenSemicolon, ";"},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w.typ {
			t.Errorf("token %d: type = %v, want %v", i, tokens[i].Type, w.typ)
		}
		if string(tokens[i].Value) != w.value {
			t.Errorf("token %d: value = %q, want %q", i, tokens[i].Value, w.value)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		value string
	}{
		{"123", TokenInteger, "123"},
		{"-42", TokenInteger, "-42"},
		{"+7", TokenInteger, "+7"},
		{"3.14", TokenReal, "3.14"},
		{"-0.5", TokenReal, "-0.5"},
		{"1.", TokenReal, "1."},
		{"2.5E-3", TokenReal, "2.5E-3"},
		{"1E6", TokenReal, "1E6"},
		{"6.02e+23", TokenReal, "6.02e+23"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(t, tt.input)
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1", len(tokens))
			}
			if tokens[0].Type != tt.typ {
				t.Errorf("type = %v, want %v", tokens[0].Type, tt.typ)
			}
			if string(tokens[0].Value) != tt.value {
				t.Errorf("value = %q, want %q", tokens[0].Value, tt.value)
			}
		})
	}
}

func TestLexStringEscapedQuote(t *testing.T) {
	tokens := lexAll(t, "'it''s a space'")
	if len(tokens) != 1 || tokens[0].Type != TokenString {
		t.Fatalf("expected one string token, got %v", tokens)
	}
	if got := string(tokens[0].Value); got != "it's a space" {
		t.Errorf("string value = %q, want %q", got, "it's a space")
	}
}

func TestLexComment(t *testing.T) {
	tokens := lexAll(t, "/* header junk */ DATA")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Type != TokenComment {
		t.Errorf("first token type = %v, want Comment", tokens[0].Type)
	}
	if tokens[1].Type != TokenKeyword || string(tokens[1].Value) != "DATA" {
		t.Errorf("second token = %v %q, want keyword DATA", tokens[1].Type, tokens[1].Value)
	}
}

func TestLexHyphenatedKeyword(t *testing.T) {
	tokens := lexAll(t, "ISO-10303-21;")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Type != TokenKeyword || string(tokens[0].Value) != "ISO-10303-21" {
		t.Errorf("token = %v %q, want keyword ISO-10303-21", tokens[0].Type, tokens[0].Value)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	l := NewLexer(strings.NewReader("'no end"))
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexRealList(t *testing.T) {
	tokens := lexAll(t, "(1.,2.5,.T.)")
	types := []TokenType{TokenLParen, TokenReal, TokenComma, TokenReal, TokenComma, TokenEnum, TokenRParen}
	if len(tokens) != len(types) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(types))
	}
	for i, typ := range types {
		if tokens[i].Type != typ {
			t.Errorf("token %d: type = %v, want %v", i, tokens[i].Type, typ)
		}
	}
}

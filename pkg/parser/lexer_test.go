package parser

import (
	"testing"

	"github.com/leapstack-labs/rowcap/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenize runs the lexer to EOF and returns all tokens plus the sink.
func tokenize(input string) ([]token.Token, *ErrorSink) {
	sink := &ErrorSink{}
	l := NewLexer(input, sink)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return tokens, sink
		}
		tokens = append(tokens, tok)
	}
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []token.TokenType
	}{
		{
			name:  "simple select",
			input: "SELECT * FROM t",
			types: []token.TokenType{token.SELECT, token.STAR, token.FROM, token.IDENT},
		},
		{
			name:  "limit clause",
			input: "LIMIT 500",
			types: []token.TokenType{token.LIMIT, token.NUMBER},
		},
		{
			name:  "fetch first clause",
			input: "FETCH FIRST 10 ROWS ONLY",
			types: []token.TokenType{token.FETCH, token.FIRST, token.NUMBER, token.ROWS, token.ONLY},
		},
		{
			name:  "operators",
			input: "a <= b <> c || d",
			types: []token.TokenType{token.IDENT, token.LE, token.IDENT, token.NE, token.IDENT, token.DPIPE, token.IDENT},
		},
		{
			name:  "punctuation",
			input: "(a, b);",
			types: []token.TokenType{token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.RPAREN, token.SEMI},
		},
		{
			name:  "numbers",
			input: "1 2.5 1e10 3E-2",
			types: []token.TokenType{token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, sink := tokenize(tt.input)
			require.False(t, sink.HasError())
			var got []token.TokenType
			for _, tok := range tokens {
				got = append(got, tok.Type)
			}
			assert.Equal(t, tt.types, got)
		})
	}
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"select", "SELECT", "Select", "sELECT"} {
		tokens, sink := tokenize(input)
		require.False(t, sink.HasError())
		require.Len(t, tokens, 1)
		assert.Equal(t, token.SELECT, tokens[0].Type)
		// The literal keeps whatever the caller typed.
		assert.Equal(t, input, tokens[0].Literal)
	}
}

func TestLexerLiteralsKeepOriginalCase(t *testing.T) {
	tokens, sink := tokenize("select Name from Users where City = 'London'")
	require.False(t, sink.HasError())

	var literals []string
	for _, tok := range tokens {
		literals = append(literals, tok.Literal)
	}
	assert.Equal(t, []string{"select", "Name", "from", "Users", "where", "City", "=", "London"}, literals)
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"line comment", "SELECT 1 -- trailing", 2},
		{"leading line comment", "-- header\nSELECT 1", 2},
		{"block comment", "SELECT /* inline */ 1", 2},
		{"unclosed block comment swallows rest", "SELECT 1 /* open", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, sink := tokenize(tt.input)
			require.False(t, sink.HasError())
			assert.Len(t, tokens, tt.count)
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tokens, sink := tokenize("'hello' 'it''s'")
	require.False(t, sink.HasError())
	require.Len(t, tokens, 2)
	assert.Equal(t, "hello", tokens[0].Literal)
	assert.Equal(t, "it's", tokens[1].Literal)
}

func TestLexerQuotedIdentifier(t *testing.T) {
	tokens, sink := tokenize(`"Mixed Case" "col""name"`)
	require.False(t, sink.HasError())
	require.Len(t, tokens, 2)
	assert.Equal(t, token.IDENT, tokens[0].Type)
	assert.Equal(t, "Mixed Case", tokens[0].Literal)
	assert.Equal(t, `col"name`, tokens[1].Literal)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, sink := tokenize("SELECT 'open")
	require.True(t, sink.HasError())
	assert.Contains(t, sink.Err().Message, "unterminated")
}

func TestLexerIllegalCharacter(t *testing.T) {
	_, sink := tokenize("SELECT a ? b")
	require.True(t, sink.HasError())
	assert.Contains(t, sink.Err().Message, "illegal character")
}

func TestLexerPositions(t *testing.T) {
	tokens, sink := tokenize("SELECT a\nFROM t")
	require.False(t, sink.HasError())
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[1].Pos.Line)
	assert.Equal(t, 2, tokens[2].Pos.Line) // FROM starts line 2
	assert.Equal(t, 1, tokens[2].Pos.Column)
}

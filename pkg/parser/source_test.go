package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldUpper(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"lowercase a", 'a', 'A'},
		{"lowercase z", 'z', 'Z'},
		{"lowercase m", 'm', 'M'},
		{"uppercase passes through", 'Q', 'Q'},
		{"digit passes through", '7', '7'},
		{"space passes through", ' ', ' '},
		{"punctuation passes through", ';', ';'},
		{"eof sentinel unchanged", eof, eof},
		{"zero unchanged", 0, 0},
		{"below lowercase range", 'a' - 1, 'a' - 1},
		{"above lowercase range", 'z' + 1, 'z' + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldUpper(tt.in))
		})
	}
}

func TestFoldUpperAppliesAtEveryLookahead(t *testing.T) {
	// Keyword matching must work no matter where in the input the
	// lowercase letters appear, not just at the first character.
	sink := &ErrorSink{}
	l := NewLexer("sElEcT fRoM lImIt", sink)

	types := []string{"SELECT", "FROM", "LIMIT"}
	for _, want := range types {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Type.String())
	}
	assert.False(t, sink.HasError())
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hksl-lang/hksl/internal/token"
)

// Table-driven style grounded in akashmaji946-go-mix/lexer/lexer_test.go.
type tokenCase struct {
	Name   string
	Input  string
	Expect []token.Kind
}

func TestCollectTokens_Punctuation(t *testing.T) {
	tests := []tokenCase{
		{
			Name:  "two-char forms win over one-char prefixes",
			Input: "+= -= *= /= == ->",
			Expect: []token.Kind{
				token.PlusEqual, token.MinusEqual, token.StarEqual, token.SlashEqual,
				token.DoubleEquals, token.RightArrow, token.Eof,
			},
		},
		{
			Name:  "single-char punctuation",
			Input: "+ - * / , . ; : = ( ) [ ] { }",
			Expect: []token.Kind{
				token.Plus, token.Minus, token.Star, token.Slash, token.Comma, token.Dot,
				token.Semicolon, token.Colon, token.Equals, token.LeftRound, token.RightRound,
				token.LeftSquare, token.RightSquare, token.LeftCurly, token.RightCurly, token.Eof,
			},
		},
		{
			Name:   "line comment runs to end of line",
			Input:  "1 // ignored until here\n2",
			Expect: []token.Kind{token.Number, token.Number, token.Eof},
		},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			toks, err := New(tc.Input).CollectTokens()
			require.NoError(t, err)
			kinds := make([]token.Kind, len(toks))
			for i, tok := range toks {
				kinds[i] = tok.Kind
			}
			assert.Equal(t, tc.Expect, kinds)
		})
	}
}

func TestCollectTokens_Keywords(t *testing.T) {
	toks, err := New("fn if else let return notakeyword").CollectTokens()
	require.NoError(t, err)

	want := []token.Kind{
		token.KeywordFn, token.KeywordIf, token.KeywordElse, token.KeywordLet,
		token.KeywordReturn, token.Identifier, token.Eof,
	}
	got := make([]token.Kind, len(toks))
	for i, tok := range toks {
		got[i] = tok.Kind
	}
	assert.Equal(t, want, got)
}

func TestCollectTokens_Numbers(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Value float64
	}{
		{"integer literal", "3", 3},
		{"trailing dot", "3.", 3},
		{"fractional", "3.5", 3.5},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			toks, err := New(tc.Input).CollectTokens()
			require.NoError(t, err)
			require.Equal(t, token.Number, toks[0].Kind)
			assert.Equal(t, tc.Value, toks[0].Value)
		})
	}
}

func TestCollectTokens_LeadingDotIsAParseTimeDigitRequirement(t *testing.T) {
	// ".3" lexes as Dot then Number(3), not a single Number — the lexer
	// requires a leading digit (spec §8 boundary case); it is the parser's
	// job (not the lexer's) to reject this as a malformed primary.
	toks, err := New(".3").CollectTokens()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.Dot, toks[0].Kind)
	assert.Equal(t, token.Number, toks[1].Kind)
}

func TestCollectTokens_Identifiers(t *testing.T) {
	toks, err := New("foo_bar Baz1").CollectTokens()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "foo_bar", toks[0].Name)
	assert.Equal(t, "Baz1", toks[1].Name)
}

func TestCollectTokens_UnexpectedCharacterIsFatal(t *testing.T) {
	_, err := New("1 @ 2").CollectTokens()
	require.Error(t, err)

	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Msg, "@")
}

func TestCollectTokens_TracksLineAndColumn(t *testing.T) {
	toks, err := New("1\n22").CollectTokens()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.Span{Line: 1, Col: 1}, toks[0].Span)
	assert.Equal(t, token.Span{Line: 2, Col: 1}, toks[1].Span)
}

func TestCollectTokens_EmptySource(t *testing.T) {
	toks, err := New("").CollectTokens()
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Eof, toks[0].Kind)
}

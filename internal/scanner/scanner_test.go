package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := New(src, sink).ScanTokens()
	return toks, sink
}

func TestEmptySourceYieldsEOF(t *testing.T) {
	toks, sink := scan(t, "")
	require.False(t, sink.HadError())
	want := []token.Token{token.New(token.EOF, "", nil, 1)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestArithmeticTokens(t *testing.T) {
	toks, sink := scan(t, "2 + 4")
	require.False(t, sink.HadError())
	want := []token.Token{
		token.New(token.Number, "2", 2.0, 1),
		token.New(token.Plus, "+", nil, 1),
		token.New(token.Number, "4", 4.0, 1),
		token.New(token.EOF, "", nil, 1),
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks, sink := scan(t, "!= == <= >= ! = < >")
	require.False(t, sink.HadError())
	wantTypes := []token.Type{
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Bang, token.Equal, token.Less, token.Greater, token.EOF,
	}
	require.Len(t, toks, len(wantTypes))
	for i, typ := range wantTypes {
		require.Equalf(t, typ, toks[i].Type, "token %d", i)
	}
}

func TestLineCommentConsumedToEndOfLine(t *testing.T) {
	toks, sink := scan(t, "1 // a comment\n2")
	require.False(t, sink.HadError())
	require.Equal(t, token.Number, toks[0].Type)
	require.Equal(t, token.Number, toks[1].Type)
	require.Equal(t, 2, toks[1].Line)
}

func TestStringLiteralSpansLines(t *testing.T) {
	toks, sink := scan(t, "\"a\nb\" 1")
	require.False(t, sink.HadError())
	require.Equal(t, "a\nb", toks[0].Literal)
	require.Equal(t, 2, toks[1].Line)
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, sink := scan(t, "\"unterminated")
	require.True(t, sink.HadError())
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	toks, sink := scan(t, "1 @ 2")
	require.True(t, sink.HadError())
	// scanning continues past the bad character: both numbers still appear
	require.Equal(t, token.Number, toks[0].Type)
	require.Equal(t, token.Number, toks[1].Type)
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks, sink := scan(t, "var x = andy and true")
	require.False(t, sink.HadError())
	require.Equal(t, token.Var, toks[0].Type)
	require.Equal(t, token.Identifier, toks[1].Type)
	require.Equal(t, token.Equal, toks[2].Type)
	require.Equal(t, token.Identifier, toks[3].Type) // "andy" is not "and"
	require.Equal(t, token.And, toks[4].Type)
	require.Equal(t, token.True, toks[5].Type)
}

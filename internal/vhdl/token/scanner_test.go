package token

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, toks []Token, want ...Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got kind %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeEasyTokens(t *testing.T) {
	toks, err := Tokenize("entity nor_gate is end entity;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks,
		KindEntity, KindIdentifier, KindIs, KindEnd, KindEntity, KindTerminator, KindEOF)
}

func TestTokenizeIsCaseInsensitive(t *testing.T) {
	toks, err := Tokenize("ENTITY Foo IS end entity;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindEntity, KindIdentifier, KindIs, KindEnd, KindEntity, KindTerminator, KindEOF)
	if toks[1].Identifier.Text != "Foo" {
		t.Fatalf("expected identifier text preserved as 'Foo', got %q", toks[1].Identifier.Text)
	}
}

func TestIdentifierEqualityFoldsBasicCase(t *testing.T) {
	a := Identifier{Text: "Foo", Kind: Basic}
	b := Identifier{Text: "FOO", Kind: Basic}
	if !a.Equal(b) {
		t.Fatal("expected basic identifiers to compare equal ignoring case")
	}
}

func TestIdentifierEqualityExtendedIsCaseSensitive(t *testing.T) {
	a := Identifier{Text: "Foo", Kind: Extended}
	b := Identifier{Text: "FOO", Kind: Extended}
	if a.Equal(b) {
		t.Fatal("expected extended identifiers to be case-sensitive")
	}
	c := Identifier{Text: "Foo", Kind: Basic}
	if a.Equal(c) {
		t.Fatal("expected extended and basic identifiers to never compare equal")
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := Tokenize("-- a comment\nentity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindComment, KindEntity, KindEOF)
	if toks[0].Comment.Text != " a comment" || toks[0].Comment.Delimited {
		t.Fatalf("unexpected comment token: %+v", toks[0].Comment)
	}
}

func TestTokenizeDelimitedComment(t *testing.T) {
	toks, err := Tokenize("/* spans\nlines */ entity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindComment, KindEntity, KindEOF)
	if !toks[0].Comment.Delimited {
		t.Fatal("expected delimited comment")
	}
	if toks[1].Pos.Line != 2 {
		t.Fatalf("expected entity token on line 2, got line %d", toks[1].Pos.Line)
	}
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks, err := Tokenize("'a'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindCharLiteral, KindEOF)
	if toks[0].CharLit != "a" {
		t.Fatalf("expected char literal 'a', got %q", toks[0].CharLit)
	}
}

// A bare attribute tick ('range) must not be swallowed as the start of an
// unterminated character literal: this is the fix for the documented
// ambiguity between character literals and the tick delimiter.
func TestTokenizeAttributeTickIsNotCharLiteral(t *testing.T) {
	toks, err := Tokenize("foo'range")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindIdentifier, KindSingleQuote, KindRange, KindEOF)
}

func TestTokenizeCharLiteralFollowedByTick(t *testing.T) {
	toks, err := Tokenize("'a''b'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindCharLiteral, KindCharLiteral, KindEOF)
}

func TestTokenizeStringLiteralWithEscapedQuote(t *testing.T) {
	toks, err := Tokenize(`"a""b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindStringLiteral, KindEOF)
	if toks[0].StrLit != `a"b` {
		t.Fatalf("expected the doubled quote to unescape to a single quote, got %q", toks[0].StrLit)
	}
}

func TestTokenizeExtendedIdentifier(t *testing.T) {
	toks, err := Tokenize(`\In\`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindIdentifier, KindEOF)
	if toks[0].Identifier.Text != "In" || toks[0].Identifier.Kind != Extended {
		t.Fatalf("unexpected extended identifier: %+v", toks[0].Identifier)
	}
}

func TestTokenizeBitStringLiteralWithWidth(t *testing.T) {
	toks, err := Tokenize(`8X"11"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindBitStringLiteral, KindEOF)
	lit := toks[0].BitStrLit
	if lit == nil || lit.Width == nil || *lit.Width != 8 {
		t.Fatalf("expected width 8 threaded through, got %+v", lit)
	}
	if lit.Base != BaseX || lit.Literal != "11" {
		t.Fatalf("unexpected bit string literal: %+v", lit)
	}
}

func TestTokenizeBitStringLiteralWithoutWidth(t *testing.T) {
	toks, err := Tokenize(`UB"0101"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindBitStringLiteral, KindEOF)
	lit := toks[0].BitStrLit
	if lit.Width != nil {
		t.Fatalf("expected no width, got %v", *lit.Width)
	}
	if lit.Base != BaseUB || lit.Literal != "0101" {
		t.Fatalf("unexpected bit string literal: %+v", lit)
	}
}

func TestTokenizeBitStringLiteralOutOfRangeDigit(t *testing.T) {
	_, err := Tokenize(`B"12"`)
	if err == nil {
		t.Fatal("expected an error for a digit out of range for base B")
	}
	terr, ok := err.(*Error)
	if !ok || terr.Kind != ErrBaseOutOfRange {
		t.Fatalf("expected ErrBaseOutOfRange, got %v", err)
	}
}

func TestTokenizeBasedLiteral(t *testing.T) {
	toks, err := Tokenize("2#10101#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindAbstractLiteral, KindEOF)
	if toks[0].AbstLit.Kind != Based || toks[0].AbstLit.Text != "2#10101#" {
		t.Fatalf("unexpected based literal: %+v", toks[0].AbstLit)
	}
}

func TestTokenizeBasedLiteralAltDelimiter(t *testing.T) {
	toks, err := Tokenize("16:FF:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindAbstractLiteral, KindEOF)
	if toks[0].AbstLit.Text != "16:FF:" {
		t.Fatalf("unexpected based literal text: %q", toks[0].AbstLit.Text)
	}
}

func TestTokenizeDecimalLiteralWithExponent(t *testing.T) {
	toks, err := Tokenize("1.0e-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindAbstractLiteral, KindEOF)
	if toks[0].AbstLit.Text != "1.0e-3" {
		t.Fatalf("unexpected decimal literal text: %q", toks[0].AbstLit.Text)
	}
}

func TestTokenizeDoubleUnderlineIsAnError(t *testing.T) {
	_, err := Tokenize("1__0")
	if err == nil {
		t.Fatal("expected an error for a double underline in a numeric literal")
	}
	terr, ok := err.(*Error)
	if !ok || terr.Kind != ErrDoubleUnderline {
		t.Fatalf("expected ErrDoubleUnderline, got %v", err)
	}
}

func TestMatchDelimiterGreedyLongestMatch(t *testing.T) {
	toks, err := Tokenize("<=> <= < ?/= ?= ** *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, KindSigAssoc, KindSigAssign, KindLt, KindMatchNE, KindMatchEQ, KindDoubleStar, KindStar, KindEOF)
}

func TestDelimiterAliasBang(t *testing.T) {
	toks, err := Tokenize("!= a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != KindPipe {
		t.Fatalf("expected '!' to alias the pipe delimiter, got %v", toks[0].Kind)
	}
}

func TestTokenPositionsTrackLinesAndColumns(t *testing.T) {
	toks, err := Tokenize("a\nb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 0 {
		t.Fatalf("unexpected position for first identifier: %+v", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 0 {
		t.Fatalf("unexpected position for second identifier: %+v", toks[1].Pos)
	}
}

func TestTokenTextRoundTripsSimpleSource(t *testing.T) {
	src := "entity nor_gate is end entity;"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == KindEOF {
			continue
		}
		if rebuilt != "" {
			rebuilt += " "
		}
		rebuilt += tok.Text()
	}
	want := "entity nor_gate is end entity ;"
	if rebuilt != want {
		t.Fatalf("round trip mismatch: got %q, want %q", rebuilt, want)
	}
}

func TestNorGateDesignTokenizes(t *testing.T) {
	src := `
library ieee;
use ieee.std_logic_1164.all;

entity nor_gate is
	generic ( N : positive := 2 );
	port (
		\In\ : in  std_logic_vector(N-1 downto 0);
		output : out std_logic
	);
end entity nor_gate;

architecture rtl of nor_gate is
	signal w : std_logic_vector(N-1 downto 0) := 2#10101#;
	constant init : std_logic_vector(7 downto 0) := 8x"11";
begin
	output <= not (w(0) or w(1));
end architecture rtl;
`
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error tokenizing nor_gate design: %v", err)
	}
	if toks[len(toks)-1].Kind != KindEOF {
		t.Fatal("expected a trailing EOF token")
	}
	var sawExtended, sawBitStr bool
	for _, tok := range toks {
		if tok.Kind == KindIdentifier && tok.Identifier.Kind == Extended {
			sawExtended = true
		}
		if tok.Kind == KindBitStringLiteral {
			sawBitStr = true
		}
	}
	if !sawExtended {
		t.Error("expected to see the \\In\\ extended identifier")
	}
	if !sawBitStr {
		t.Error("expected to see the 8x\"11\" bit string literal")
	}
}

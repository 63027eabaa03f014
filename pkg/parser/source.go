package parser

// The grammar is matched against uppercase keywords, but callers type SQL in
// whatever case they like. Instead of lowercasing the whole input (which
// would corrupt string literals and quoted identifiers when text is sliced
// back out for rewriting), the lexer views every character through FoldUpper
// and slices literals from the untouched original input.

// FoldUpper maps an ASCII lowercase codepoint to its uppercase equivalent
// and passes every other codepoint through unchanged. Non-positive values
// (the end-of-input sentinel) are never shifted.
func FoldUpper(c int) int {
	if c <= 0 {
		return c
	}
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

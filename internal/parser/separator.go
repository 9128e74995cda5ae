package parser

// NeedsSeparator reports whether the token texts left and right would lex
// differently when written with nothing between them, as in "int"+"x" or
// "+"+"+". A '>' followed by '>' or '=' also needs a separator because the
// parser would join the pair into one operator.
func NeedsSeparator(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	if left == ">" && (right[0] == '>' || right[0] == '=') {
		return true
	}
	toks := Lex(left + right)
	if len(toks) != 3 {
		return true
	}
	a, b := toks[0], toks[1]
	return a.Text != left || b.Text != right || len(a.Trailing) > 0 || len(b.Leading) > 0
}

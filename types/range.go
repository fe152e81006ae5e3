package types

import "strings"

// rangeOf builds the converter for one <lo>-<hi> token. Open sides take the
// bounds of the element type.
func rangeOf[T Number](parse func(string) (T, error), float bool) func(string) (Range[T], error) {
	return func(tok string) (Range[T], error) {
		lo, hi := bounds[T]()
		r := Range[T]{Min: lo, Max: hi}

		// 1e-5 cannot be told apart from the separator
		if float && strings.ContainsAny(tok, "eE") {
			return r, tokenError(tok, ErrScientific)
		}

		left, right, err := splitRange(tok)
		if err != nil {
			return r, tokenError(tok, err)
		}
		if left != "" {
			if r.Min, err = parse(left); err != nil {
				return r, tokenError(tok, err)
			}
		}
		if right != "" {
			if r.Max, err = parse(right); err != nil {
				return r, tokenError(tok, err)
			}
		}
		if r.Min > r.Max {
			return r, tokenError(tok, ErrInvertedRange)
		}
		return r, nil
	}
}

// splitRange separates the two bounds of a range token. A dash is the
// separator unless it is a sign: leading the token, or directly following the
// separator.
//
//	1 dash:   "1-5" "-5" "5-"
//	2 dashes: "--5" (open..5)  "-5-" "-5-2"  "5--2" (5..-2)
//	3 dashes: "-5--2"  "---5" (open..-5)
func splitRange(s string) (lo, hi string, err error) {
	switch strings.Count(s, "-") {
	case 1:
		lo, hi, _ = strings.Cut(s, "-")
		return lo, hi, nil

	case 2:
		switch {
		case strings.HasPrefix(s, "--"):
			return "", s[2:], nil
		case s[0] == '-':
			i := strings.IndexByte(s[1:], '-') + 1
			return s[:i], s[i+1:], nil
		default:
			if i := strings.Index(s, "--"); i > 0 {
				return s[:i], s[i+1:], nil
			}
		}

	case 3:
		switch {
		case strings.HasPrefix(s, "---"):
			return "", s[2:], nil
		case s[0] == '-':
			if i := strings.Index(s[1:], "--"); i > 0 {
				i++
				return s[:i], s[i+1:], nil
			}
		}
	}

	return "", "", ErrRangeSyntax
}

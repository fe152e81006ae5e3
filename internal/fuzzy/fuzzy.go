// Package fuzzy finds the declared option name closest to a mistyped token.
// Used by the command parser to attach "did you mean" hints to unknown options.
package fuzzy

import (
	"sort"
	"strings"
)

// DefaultDistance is the edit distance the parser uses for suggestions
const DefaultDistance = 2

// Matcher ranks candidate option names against a token
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher accepting candidates within maxDistance edits
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single letters match everything
	}
}

// Match is one ranked candidate
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Best returns the closest candidate, or "" when none is close enough.
func (m *Matcher) Best(token string, candidates []string) string {
	matches := m.Matches(token, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Matches returns every candidate within the edit distance, best first.
// Leading dashes and letter case are ignored, so "-Input" matches "--input".
func (m *Matcher) Matches(token string, candidates []string) []Match {
	key := normalize(token)
	if len(key) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		other := normalize(candidate)
		if other == key && candidate == token {
			continue
		}

		distance := m.distance(key, other)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Value:    candidate,
			Distance: distance,
			Score:    m.score(key, other, distance),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimLeft(name, "-+"))
}

// score combines edit distance with a shared-prefix bonus
func (m *Matcher) score(a, b string, distance int) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}

	score := 1.0 - float64(distance)/float64(longest)
	if prefix := commonPrefix(a, b); prefix > 0 {
		score += float64(prefix) / float64(min(len(a), len(b))) * 0.3
	}
	return min(score, 1.0)
}

// distance is the Levenshtein distance, cut off at maxDistance+1
func (m *Matcher) distance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(b)-len(a) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Suggest returns the best declared name for token using DefaultDistance.
func Suggest(token string, names []string) string {
	return NewMatcher(DefaultDistance).Best(token, names)
}

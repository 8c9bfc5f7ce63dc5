package fuzzy

import (
	"sort"

	sahilm "github.com/sahilm/fuzzy"
)

// Score rates how well a text matches a query. Higher is better.
type Score int

// Matcher scores a single text against a query.
// ok is false when the text does not match at all.
type Matcher interface {
	Match(text, query string) (score Score, ok bool)
}

// Item is a searchable candidate
type Item interface {
	Name() string
	Description() string
	Score(m Matcher, query string) (Score, bool)
}

// SubsequenceMatcher matches when every query character appears in the
// text in order. Scoring favours consecutive runs, word starts and early
// first matches.
type SubsequenceMatcher struct{}

// Match implements Matcher. The empty query matches everything with score 0.
func (SubsequenceMatcher) Match(text, query string) (Score, bool) {
	if query == "" {
		return 0, true
	}
	matches := sahilm.Find(query, []string{text})
	if len(matches) == 0 {
		return 0, false
	}
	return Score(matches[0].Score), true
}

// FirstMatch scores fields in priority order and returns the first one that
// matches, even if a later field would have scored higher.
func FirstMatch(m Matcher, query string, fields ...string) (Score, bool) {
	for _, field := range fields {
		if score, ok := m.Match(field, query); ok {
			return score, true
		}
	}
	return 0, false
}

// Entry is a plain name/description item.
type Entry struct {
	name        string
	description string
}

// NewEntry creates an entry
func NewEntry(name, description string) Entry {
	return Entry{name: name, description: description}
}

func (e Entry) Name() string        { return e.name }
func (e Entry) Description() string { return e.description }

// Score matches the name first, then the description.
func (e Entry) Score(m Matcher, query string) (Score, bool) {
	return FirstMatch(m, query, e.name, e.description)
}

// Ranked is one matching pool index with its score.
type Ranked struct {
	Index int
	Score Score
}

// RankScored returns every matching pool index with its score, best first.
// Equal scores keep their pool order.
func RankScored[T Item](pool []T, query string, m Matcher) []Ranked {
	ranked := make([]Ranked, 0, len(pool))
	for i, item := range pool {
		if score, ok := item.Score(m, query); ok {
			ranked = append(ranked, Ranked{Index: i, Score: score})
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

// Rank returns the pool indices of the items matching query, best first.
func Rank[T Item](pool []T, query string, m Matcher) []int {
	scored := RankScored(pool, query, m)
	indices := make([]int, len(scored))
	for i, r := range scored {
		indices[i] = r.Index
	}
	return indices
}

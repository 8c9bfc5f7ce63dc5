package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/fuzzy"
)

type fixed map[string]fuzzy.Score

func (f fixed) Match(text, query string) (fuzzy.Score, bool) {
	s, ok := f[text]
	return s, ok
}

func TestExampleScoreFirstFieldWins(t *testing.T) {
	ex := Example{Slug: "counter", Summary: "a simple counter", Source: "func main() {}"}

	score, ok := ex.Score(fixed{"a simple counter": 4, "func main() {}": 40}, "q")
	require.True(t, ok)
	assert.Equal(t, fuzzy.Score(4), score)

	score, ok = ex.Score(fixed{"counter": 1, "a simple counter": 4}, "q")
	require.True(t, ok)
	assert.Equal(t, fuzzy.Score(1), score)

	_, ok = ex.Score(fixed{}, "q")
	assert.False(t, ok)
}

func TestExampleMatchesSource(t *testing.T) {
	ex := Example{Slug: "counter", Summary: "increments", Source: "tea.NewProgram"}

	_, ok := ex.Score(fuzzy.SubsequenceMatcher{}, "NewProgram")
	assert.True(t, ok)
}

func TestIndexOf(t *testing.T) {
	pool := []Example{{Slug: "a"}, {Slug: "hello_world"}}
	assert.Equal(t, 1, IndexOf(pool, "hello_world"))
	assert.Equal(t, -1, IndexOf(pool, "missing"))
}

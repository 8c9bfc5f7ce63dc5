// Package selector implements the fuzzy-match selector state machine: a
// query, a focus flag and a highlighted row over a ranked list of pool
// indices, driven by keyboard, pointer and focus events.
//
// The selector never draws anything. A host renders Rows while Visible
// and forwards input events to the transition methods.
package selector

import (
	"showcase/internal/fuzzy"
)

// Option configures a Selector
type Option func(*options)

type options struct {
	matcher     fuzzy.Matcher
	placeholder string
}

// WithMatcher replaces the default subsequence matcher.
func WithMatcher(m fuzzy.Matcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithPlaceholder sets the hint shown in an empty input.
func WithPlaceholder(p string) Option {
	return func(o *options) { o.placeholder = p }
}

// Row is one visible candidate.
type Row[T fuzzy.Item] struct {
	// Index is the item's position in the pool.
	Index       int
	Item        T
	Highlighted bool
}

// Selector holds the state of one mounted fuzzy finder over a fixed pool.
type Selector[T fuzzy.Item] struct {
	pool        []T
	choice      func(index int)
	focus       *Focus
	matcher     fuzzy.Matcher
	placeholder string

	query     string
	ranked    []int
	selection int

	unsubscribe func()
}

// New creates a selector over pool. choice receives the pool index of every
// confirmed candidate. focus is shared with the host.
func New[T fuzzy.Item](pool []T, choice func(index int), focus *Focus, opts ...Option) *Selector[T] {
	o := options{matcher: fuzzy.SubsequenceMatcher{}}
	for _, opt := range opts {
		opt(&o)
	}
	if focus == nil {
		focus = NewFocus(false)
	}

	s := &Selector[T]{
		pool:        pool,
		choice:      choice,
		focus:       focus,
		matcher:     o.matcher,
		placeholder: o.placeholder,
	}
	s.rerank()

	s.unsubscribe = focus.OnChange(func(focused bool) {
		if !focused {
			s.reset()
		}
	})
	return s
}

// Close detaches the selector from the shared focus flag.
func (s *Selector[T]) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Selector[T]) Query() string       { return s.query }
func (s *Selector[T]) Selection() int      { return s.selection }
func (s *Selector[T]) Focused() bool       { return s.focus.Focused() }
func (s *Selector[T]) Placeholder() string { return s.placeholder }
func (s *Selector[T]) Pool() []T           { return s.pool }

// Ranked returns a copy of the current ranked list of pool indices.
func (s *Selector[T]) Ranked() []int {
	out := make([]int, len(s.ranked))
	copy(out, s.ranked)
	return out
}

// Visible reports whether the candidate list should be drawn: the selector
// is focused and the query is non-empty. An empty query keeps the whole
// pool ranked but hidden.
func (s *Selector[T]) Visible() bool {
	return s.focus.Focused() && s.query != ""
}

// Rows returns the candidates to draw, or nil while the list is hidden.
func (s *Selector[T]) Rows() []Row[T] {
	if !s.Visible() {
		return nil
	}
	rows := make([]Row[T], len(s.ranked))
	for i, idx := range s.ranked {
		rows[i] = Row[T]{Index: idx, Item: s.pool[idx], Highlighted: i == s.selection}
	}
	return rows
}

// SetQuery handles a change of the input text.
func (s *Selector[T]) SetQuery(q string) {
	s.query = q
	s.rerank()
	s.focus.Set(true)
}

// Blur handles loss of input focus: the list hides and the query clears.
func (s *Selector[T]) Blur() {
	s.reset()
	s.focus.Set(false)
}

// Escape behaves like Blur.
func (s *Selector[T]) Escape() {
	s.Blur()
}

// Down moves the highlight one row down, stopping at the last row.
func (s *Selector[T]) Down() {
	if !s.focus.Focused() || len(s.ranked) == 0 {
		return
	}
	if s.selection < len(s.ranked)-1 {
		s.selection++
	}
}

// Up moves the highlight one row up, stopping at the first row.
func (s *Selector[T]) Up() {
	if !s.focus.Focused() || len(s.ranked) == 0 {
		return
	}
	if s.selection > 0 {
		s.selection--
	}
}

// Enter confirms the highlighted candidate and closes the selector.
func (s *Selector[T]) Enter() {
	if !s.focus.Focused() {
		return
	}
	s.confirm()
	s.Blur()
}

// Hover highlights row i of the visible list.
func (s *Selector[T]) Hover(i int) {
	if !s.Visible() || i < 0 || i >= len(s.ranked) {
		return
	}
	s.selection = i
}

// Press confirms row i of the visible list and closes the selector.
func (s *Selector[T]) Press(i int) {
	if !s.Visible() || i < 0 || i >= len(s.ranked) {
		return
	}
	s.selection = i
	s.confirm()
	s.Blur()
}

func (s *Selector[T]) confirm() {
	if len(s.ranked) == 0 || s.choice == nil {
		return
	}
	s.choice(s.ranked[s.selection])
}

func (s *Selector[T]) reset() {
	s.query = ""
	s.selection = 0
	s.rerank()
}

// rerank recomputes the ranked list and clamps the selection into it.
func (s *Selector[T]) rerank() {
	s.ranked = fuzzy.Rank(s.pool, s.query, s.matcher)

	switch {
	case len(s.ranked) == 0:
		s.selection = 0
	case s.selection >= len(s.ranked):
		s.selection = len(s.ranked) - 1
	case s.selection < 0:
		s.selection = 0
	}
}

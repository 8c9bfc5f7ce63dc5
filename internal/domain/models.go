package domain

import (
	"showcase/internal/fuzzy"
)

// Example is one entry of the gallery, produced by the catalog loader.
// All text fields are already rendered and validated.
type Example struct {
	Slug        string // file stem, e.g. "counter"
	Summary     string // one-line description
	Motivation  string // rendered markdown
	Related     string // rendered markdown, "" when absent
	Source      string // raw source text
	Highlighted string // source with terminal colors
	Path        string // absolute path of the source file
	Demo        string // demo command template, "" for the configured default
	Output      string // captured demo output, "" when absent
}

func (e Example) Name() string        { return e.Slug }
func (e Example) Description() string { return e.Summary }

// Score matches the name, then the description, then the source, and keeps
// the first field that matches.
func (e Example) Score(m fuzzy.Matcher, query string) (fuzzy.Score, bool) {
	return fuzzy.FirstMatch(m, query, e.Slug, e.Summary, e.Source)
}

// IndexOf returns the position of the example named slug, or -1.
func IndexOf(examples []Example, slug string) int {
	for i, ex := range examples {
		if ex.Slug == slug {
			return i
		}
	}
	return -1
}

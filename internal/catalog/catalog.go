// Package catalog harvests the examples directory into the ordered pool the
// gallery browses.
//
// For every example named NAME the directory holds either NAME.go or a
// NAME/ package with a main.go, plus NAME.toml (or NAME.yaml) metadata:
//
//	description = "one line"         # required
//	motivation  = "markdown"         # required, no headings
//	related     = "markdown"         # optional, no headings
//	demo        = "go run {dir}"     # optional command override
//
// An optional NAME.txt holds captured demo output. Any malformed example
// fails the whole load.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"showcase/internal/domain"
	"showcase/internal/logging"
)

var (
	ErrMissingMetadata = errors.New("missing metadata file")
	ErrMissingField    = errors.New("missing required field")
	ErrHeading         = errors.New("headings are not allowed in this field")
	ErrNoExamples      = errors.New("no examples found")
)

// Options controls rendering of the harvested content
type Options struct {
	CodeStyle     string
	MarkdownStyle string
	DocsWidth     int
}

type metadata struct {
	Description string `toml:"description" yaml:"description"`
	Motivation  string `toml:"motivation" yaml:"motivation"`
	Related     string `toml:"related" yaml:"related"`
	Demo        string `toml:"demo" yaml:"demo"`
}

// Loader reads and renders examples
type Loader struct {
	style    *chroma.Style
	markdown *glamour.TermRenderer
	log      *zerolog.Logger
}

// NewLoader creates a loader. Unknown styles are an error.
func NewLoader(opts Options) (*Loader, error) {
	style, ok := styles.Registry[opts.CodeStyle]
	if !ok {
		return nil, fmt.Errorf("unknown code style %q", opts.CodeStyle)
	}

	width := opts.DocsWidth
	if width <= 0 {
		width = 80
	}
	rendererOpts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if opts.MarkdownStyle == "" || opts.MarkdownStyle == "auto" {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.MarkdownStyle))
	}
	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Loader{
		style:    style,
		markdown: renderer,
		log:      logging.Logger("catalog"),
	}, nil
}

// Load harvests every example in dir, ordered by name.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Example, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read examples directory: %w", err)
	}

	var examples []domain.Example
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slug, source, ok := exampleSource(dir, entry)
		if !ok {
			continue
		}

		ex, err := l.loadExample(dir, slug, source)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoExamples)
	}

	sort.SliceStable(examples, func(i, j int) bool {
		return examples[i].Slug < examples[j].Slug
	})

	l.log.Info().Str("dir", dir).Int("examples", len(examples)).Msg("catalog loaded")
	return examples, nil
}

// exampleSource reports whether entry is an example and where its main
// source file lives.
func exampleSource(dir string, entry fs.DirEntry) (slug, source string, ok bool) {
	name := entry.Name()
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return "", "", false
	}

	if entry.IsDir() {
		main := filepath.Join(dir, name, "main.go")
		if _, err := os.Stat(main); err != nil {
			return "", "", false
		}
		return name, main, true
	}

	if filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
		return "", "", false
	}
	return strings.TrimSuffix(name, ".go"), filepath.Join(dir, name), true
}

func (l *Loader) loadExample(dir, slug, sourcePath string) (domain.Example, error) {
	meta, metaPath, err := readMetadata(dir, slug)
	if err != nil {
		return domain.Example{}, err
	}

	if strings.TrimSpace(meta.Description) == "" {
		return domain.Example{}, fmt.Errorf("%s: %w %q", metaPath, ErrMissingField, "description")
	}
	if strings.TrimSpace(meta.Motivation) == "" {
		return domain.Example{}, fmt.Errorf("%s: %w %q", metaPath, ErrMissingField, "motivation")
	}

	motivation, err := l.renderMarkdown(metaPath, "motivation", meta.Motivation)
	if err != nil {
		return domain.Example{}, err
	}
	var related string
	if strings.TrimSpace(meta.Related) != "" {
		related, err = l.renderMarkdown(metaPath, "related", meta.Related)
		if err != nil {
			return domain.Example{}, err
		}
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return domain.Example{}, fmt.Errorf("failed to read example source: %w", err)
	}
	source := string(raw)

	highlighted, err := l.highlight(source)
	if err != nil {
		return domain.Example{}, fmt.Errorf("%s: failed to highlight source: %w", sourcePath, err)
	}

	var output string
	if data, err := os.ReadFile(filepath.Join(dir, slug+".txt")); err == nil {
		output = string(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return domain.Example{}, fmt.Errorf("failed to read demo output: %w", err)
	}

	path := sourcePath
	if filepath.Base(sourcePath) == "main.go" && filepath.Base(filepath.Dir(sourcePath)) == slug {
		path = filepath.Dir(sourcePath)
	}

	return domain.Example{
		Slug:        slug,
		Summary:     strings.TrimSpace(meta.Description),
		Motivation:  motivation,
		Related:     related,
		Source:      source,
		Highlighted: highlighted,
		Path:        path,
		Demo:        strings.TrimSpace(meta.Demo),
		Output:      output,
	}, nil
}

// readMetadata decodes NAME.toml, falling back to NAME.yaml and NAME.yml.
// Unknown keys are rejected.
func readMetadata(dir, slug string) (metadata, string, error) {
	var meta metadata

	tomlPath := filepath.Join(dir, slug+".toml")
	data, err := os.ReadFile(tomlPath)
	switch {
	case err == nil:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&meta); err != nil {
			return meta, tomlPath, fmt.Errorf("%s: %w", tomlPath, err)
		}
		return meta, tomlPath, nil
	case !errors.Is(err, fs.ErrNotExist):
		return meta, tomlPath, fmt.Errorf("failed to read metadata: %w", err)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		yamlPath := filepath.Join(dir, slug+ext)
		data, err := os.ReadFile(yamlPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return meta, yamlPath, fmt.Errorf("failed to read metadata: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&meta); err != nil {
			return meta, yamlPath, fmt.Errorf("%s: %w", yamlPath, err)
		}
		return meta, yamlPath, nil
	}

	return meta, tomlPath, fmt.Errorf("please create %s to document example %q: %w", tomlPath, slug, ErrMissingMetadata)
}

// renderMarkdown rejects headings and renders the field for the terminal.
func (l *Loader) renderMarkdown(file, field, src string) (string, error) {
	if err := checkMarkdown(src); err != nil {
		return "", fmt.Errorf("%s: field %q: %w", file, field, err)
	}
	out, err := l.markdown.Render(src)
	if err != nil {
		return "", fmt.Errorf("%s: field %q: %w", file, field, err)
	}
	return strings.Trim(out, "\n"), nil
}

func checkMarkdown(src string) error {
	doc := goldmark.DefaultParser().Parse(text.NewReader([]byte(src)))
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			return ast.WalkStop, ErrHeading
		}
		return ast.WalkContinue, nil
	})
}

func (l *Loader) highlight(source string) (string, error) {
	lexer := lexers.Get("go")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := formatters.TTY256.Format(&b, l.style, iterator); err != nil {
		return "", err
	}
	return b.String(), nil
}

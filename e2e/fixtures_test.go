//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExampleOption configures example creation
type ExampleOption func(*exampleOptions)

type exampleOptions struct {
	motivation string
	source     string
	output     string
}

// WithMotivation sets the markdown shown in the docs pane
func WithMotivation(md string) ExampleOption {
	return func(opts *exampleOptions) {
		opts.motivation = md
	}
}

// WithSource replaces the example's Go source
func WithSource(src string) ExampleOption {
	return func(opts *exampleOptions) {
		opts.source = src
	}
}

// WithOutput adds captured demo output
func WithOutput(out string) ExampleOption {
	return func(opts *exampleOptions) {
		opts.output = out
	}
}

// CreateTestWorkspace creates an empty examples directory and an isolated home
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	tf.home = tf.t.TempDir()

	// Keep logs out of the examples directory and glamour off the terminal probe
	local := "[ui]\nmarkdown_style = \"dark\"\n\n[log]\nfile = \"" + filepath.Join(tf.home, "showcase.log") + "\"\n"
	if err := os.WriteFile(filepath.Join(tf.workspace, ".showcase.toml"), []byte(local), 0o644); err != nil {
		return "", err
	}
	return tf.workspace, nil
}

// CreateExample writes NAME.go and NAME.toml into the workspace
func (tf *TUITestFramework) CreateExample(name, description string, options ...ExampleOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := exampleOptions{
		motivation: "Shows " + name + ".",
		source:     fmt.Sprintf("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(%q)\n}\n", name),
	}
	for _, o := range options {
		o(&opts)
	}

	path := filepath.Join(tf.workspace, name+".go")
	if err := os.WriteFile(path, []byte(opts.source), 0o644); err != nil {
		return "", err
	}

	meta := fmt.Sprintf("description = %q\nmotivation = %q\n", description, opts.motivation)
	if err := os.WriteFile(filepath.Join(tf.workspace, name+".toml"), []byte(meta), 0o644); err != nil {
		return "", err
	}

	if opts.output != "" {
		if err := os.WriteFile(filepath.Join(tf.workspace, name+".txt"), []byte(opts.output), 0o644); err != nil {
			return "", err
		}
	}
	return path, nil
}

// CreateGallery creates a few examples used by most tests
func (tf *TUITestFramework) CreateGallery() (string, error) {
	workspace, err := tf.CreateTestWorkspace()
	if err != nil {
		return "", err
	}
	examples := map[string]string{
		"hello_world": "The smallest program",
		"counter":     "Click to count",
		"timer":       "Ticks every second",
		"todo_list":   "Keep track of things",
	}
	for name, desc := range examples {
		if _, err := tf.CreateExample(name, desc); err != nil {
			return "", err
		}
	}
	return workspace, nil
}

// Package demo turns an example's demo command template into a process.
package demo

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"showcase/internal/domain"
)

// ErrEmptyCommand is returned when the template has no words
var ErrEmptyCommand = errors.New("empty demo command")

// Args splits template shell-style and substitutes {file}, {dir} and {name}.
// The example's own demo command overrides the template.
func Args(template string, ex domain.Example) ([]string, error) {
	if ex.Demo != "" {
		template = ex.Demo
	}

	words, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse demo command %q: %w", template, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	dir := filepath.Dir(ex.Path)
	if isPackage(ex) {
		dir = ex.Path
	}
	replacer := strings.NewReplacer(
		"{file}", ex.Path,
		"{dir}", dir,
		"{name}", ex.Slug,
	)
	for i, w := range words {
		words[i] = replacer.Replace(w)
	}
	return words, nil
}

// Command builds the process for ex. It runs in the example's directory.
func Command(template string, ex domain.Example) (*exec.Cmd, error) {
	args, err := Args(template, ex)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if isPackage(ex) {
		cmd.Dir = ex.Path
	} else {
		cmd.Dir = filepath.Dir(ex.Path)
	}
	return cmd, nil
}

func isPackage(ex domain.Example) bool {
	return filepath.Ext(ex.Path) != ".go"
}

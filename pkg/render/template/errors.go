package template

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTemplateNotFound is matched by every NotFoundError.
	ErrTemplateNotFound = errors.New("template: not found")
	// ErrTemplateSyntax is matched by every SyntaxError.
	ErrTemplateSyntax = errors.New("template: syntax error")
)

// NotFoundError reports a name no directory in the search order could serve.
type NotFoundError struct {
	Name  string
	Tried []Origin
}

func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("template: %q not found", e.Name)
	}
	paths := make([]string, 0, len(e.Tried))
	for _, origin := range e.Tried {
		paths = append(paths, origin.Path())
	}
	return fmt.Sprintf("template: %q not found (tried: %s)", e.Name, strings.Join(paths, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// SyntaxError reports a template that was found but could not be parsed.
type SyntaxError struct {
	Origin Origin
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template: syntax error in %s: %v", e.Origin.Path(), e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrTemplateSyntax
}

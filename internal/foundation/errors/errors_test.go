package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "site.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "site.yaml" {
			t.Errorf("expected context file=site.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := DocsError("source corpus not found").Build()
		wrapped := fmt.Errorf("convert: %w", inner)

		classified, ok := AsClassified(wrapped)
		if !ok {
			t.Fatal("expected classified error in chain")
		}
		if classified.Category() != CategoryDocs {
			t.Errorf("expected docs category, got %s", classified.Category())
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to map to internal")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("exit status 64")
	err := WrapError(originalErr, CategoryConverter, "pandoc failed").
		Warning().
		WithContext("document", "a/b.tex").
		Build()

	if err.Severity() != SeverityWarning {
		t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
	}
	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if got := err.Error(); got != "[converter:warning] pandoc failed: exit status 64" {
		t.Errorf("unexpected message %q", got)
	}

	doc, _ := err.Context().GetString("document")
	if doc != "a/b.tex" {
		t.Errorf("expected document context 'a/b.tex', got %s", doc)
	}

	again := err.WithContext("stage", "convert")
	if _, ok := err.Context().Get("stage"); ok {
		t.Error("WithContext must not mutate the receiver")
	}
	if _, ok := again.Context().Get("stage"); !ok {
		t.Error("expected stage on the copy")
	}
}

func TestClassifiedError_Is(t *testing.T) {
	a := NewError(CategoryRender, "no head").Build()
	b := NewError(CategoryRender, "no head").WithContext("path", "x.html").Build()
	c := NewError(CategoryRender, "other").Build()

	if !errors.Is(a, b) {
		t.Error("expected same category and message to match")
	}
	if errors.Is(a, c) {
		t.Error("expected different messages not to match")
	}
}

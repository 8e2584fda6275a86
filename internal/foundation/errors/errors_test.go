package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryValidation, "invalid plug name").
			WithSeverity(SeverityFatal).
			WithContext("name", "Bad_Name").
			Build()

		if err.Category() != CategoryValidation {
			t.Errorf("expected category %s, got %s", CategoryValidation, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid plug name" {
			t.Errorf("expected message 'invalid plug name', got %s", err.Message())
		}

		name, exists := err.Context().GetString("name")
		if !exists || name != "Bad_Name" {
			t.Errorf("expected context name=Bad_Name, got %v", name)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := GitError("push rejected").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryGit) {
			t.Error("expected error to have git category")
		}
		if err.IsFatal() {
			t.Error("default severity should not be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := FileSystemError("cannot create directory").Build()
		wrapped := fmt.Errorf("create step: %w", inner)

		if !HasCategory(wrapped, CategoryFileSystem) {
			t.Error("expected wrapped error to keep filesystem category")
		}
		if GetCategory(wrapped) != CategoryFileSystem {
			t.Errorf("expected filesystem category, got %s", GetCategory(wrapped))
		}
	})

	t.Run("Unclassified fallbacks", func(t *testing.T) {
		err := errors.New("plain")
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(err))
		}
		if GetSeverity(err) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(err))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryGit, "push failed").
			Warning().
			WithContext("remote", "origin").
			Build()

		if !errors.Is(err, err) {
			t.Error("error should match itself")
		}
		if err.Cause() != originalErr {
			t.Error("expected cause to be preserved")
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected warning severity, got %s", err.Severity())
		}
		if errors.Unwrap(err) != originalErr {
			t.Error("Unwrap should return the original error")
		}
	})

	t.Run("Category override", func(t *testing.T) {
		err := GitError("ambiguous failure").WithCategory(CategoryConfig).Build()
		if err.Category() != CategoryConfig {
			t.Errorf("expected config category, got %s", err.Category())
		}
	})
}

func TestCLIAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{ValidationError("bad name").Build(), 2},
		{ConfigError("bad yaml").Build(), 7},
		{GitError("push failed").Build(), 8},
		{FileSystemError("mkdir failed").Build(), 11},
		{HistoryError("journal failed").Build(), 12},
		{NewError(CategoryInternal, "bug").Build(), 10},
	}
	for _, c := range cases {
		if got := adapter.ExitCodeFor(c.err); got != c.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", c.err, got, c.code)
		}
	}
}

func TestCLIAdapterFormat(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	err := ValidationError("invalid plug name").Build()

	msg := adapter.FormatError(err)
	if msg != "Error: invalid plug name" {
		t.Errorf("unexpected message: %q", msg)
	}

	verbose := NewCLIErrorAdapter(true, nil)
	if verbose.FormatError(err) != err.Error() {
		t.Error("verbose formatting should include classification")
	}
}

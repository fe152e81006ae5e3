package command

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// recordLogger collects diagnostic output
type recordLogger struct {
	mu     sync.Mutex
	debugs []string
	infos  []string
	errors []string
}

func (l *recordLogger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// expectConfigPanic runs fn and fails unless it panics with a *ConfigError
func expectConfigPanic(t *testing.T, fn func()) *ConfigError {
	t.Helper()
	var got *ConfigError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			ce, ok := r.(*ConfigError)
			if !ok {
				t.Fatalf("panic value %T (%v), want *ConfigError", r, r)
			}
			got = ce
		}()
		fn()
	}()
	if got == nil {
		t.Fatalf("expected configuration panic")
	}
	return got
}

// expectParseError asserts err is a *ParseError of the given type
func expectParseError(t *testing.T, err error, want ErrorType) *ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Type != want {
		t.Fatalf("error type = %s, want %s (%v)", pe.Type, want, pe)
	}
	return pe
}

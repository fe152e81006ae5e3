package types

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRangeValidator(t *testing.T) {
	v := NumberRange[int32](1, 10)
	if v.Kind() != Integer {
		t.Fatalf("Kind() = %s, want INTEGER", v.Kind())
	}
	if v.String() != "1 ~ 10" {
		t.Errorf("String() = %q", v.String())
	}

	tests := []struct {
		name  string
		value any
		want  any
		fail  bool
	}{
		{"inside", int32(5), int32(5), false},
		{"edge", int32(10), int32(10), false},
		{"above", int32(11), nil, true},
		{"array", []int32{1, 2}, []int32{1, 2}, false},
		{"array element", []int32{1, 0}, nil, true},
		{"set", Set[int32]{3, 4}, Set[int32]{3, 4}, false},
		{"map", map[string]int32{"a": 20}, nil, true},
		{"label array", map[string][]int32{"a": {2, 3}}, map[string][]int32{"a": {2, 3}}, false},
		{"closed range", Range[int32]{2, 8}, Range[int32]{2, 8}, false},
		{"open range narrowed", Range[int32]{math.MinInt32, 5}, Range[int32]{1, 5}, false},
		{"fully open range", Range[int32]{math.MinInt32, math.MaxInt32}, Range[int32]{1, 10}, false},
		{"range outside", Range[int32]{0, 5}, nil, true},
		{"label range", map[string]Range[int32]{"x": {4, math.MaxInt32}}, map[string]Range[int32]{"x": {4, 10}}, false},
		{"wrong type", "7", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate("--threads", tt.value)
			if tt.fail {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if ve.Option != "--threads" {
					t.Errorf("Option = %q", ve.Option)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%v): %v", tt.value, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRangeValidatorClamp(t *testing.T) {
	strict := NumberRange(0.0, 1.0)
	v := strict.Clamp()

	got, err := v.Validate("--ratio", []float64{-3, 0.5, 7})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 0.5, 1}, got); diff != "" {
		t.Errorf("clamp mismatch (-want +got):\n%s", diff)
	}

	// clamping may collapse set members
	set, err := v.Validate("--ratio", Set[float64]{2, 3})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff(Set[float64]{1}, set); diff != "" {
		t.Errorf("set mismatch (-want +got):\n%s", diff)
	}

	if _, err := strict.Validate("--ratio", 2.0); err == nil {
		t.Errorf("Clamp must not modify the original validator")
	}
}

func TestNumberRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for min > max")
		}
	}()
	NumberRange[int8](5, 1)
}

func TestElementValidator(t *testing.T) {
	v := Elements("fast", "slow")
	if v.Kind() != String || v.String() != "[fast, slow]" {
		t.Fatalf("unexpected validator %s (%s)", v, v.Kind())
	}

	if _, err := v.Validate("--mode", "FAST"); err == nil {
		t.Errorf("case-sensitive validator accepted FAST")
	}

	folded := v.IgnoreCase()
	got, err := folded.Validate("--mode", []string{"FAST", "Slow"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff([]string{"fast", "slow"}, got); diff != "" {
		t.Errorf("coercion mismatch (-want +got):\n%s", diff)
	}

	got, err = folded.Validate("--mode", Set[string]{"Fast", "fast"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff(Set[string]{"fast"}, got); diff != "" {
		t.Errorf("set mismatch (-want +got):\n%s", diff)
	}

	_, err = folded.Validate("--mode", map[string]string{"a": "medium"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Value != "medium" {
		t.Fatalf("expected ValidationError for medium, got %v", err)
	}
	if !strings.Contains(ve.Error(), "must be one of [fast, slow]") {
		t.Errorf("Error() = %q", ve.Error())
	}

	if _, err := v.Validate("--mode", 3); err == nil {
		t.Errorf("non-string values must be rejected")
	}
}

func TestFileValidators(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name  string
		v     *FileValidator
		value any
		fail  bool
	}{
		{"exists", FileExists(), FilePath(file), false},
		{"exists dir", FileExists(), FilePath(dir), false},
		{"exists missing", FileExists(), FilePath(missing), true},
		{"exists array", FileExists(), []FilePath{FilePath(file), FilePath(missing)}, true},
		{"not directory file", NotDirectory(), FilePath(file), false},
		{"not directory missing", NotDirectory(), FilePath(missing), false},
		{"not directory dir", NotDirectory(), map[string]FilePath{"out": FilePath(dir)}, true},
		{"directory", DirectoryExists(), Set[FilePath]{FilePath(dir)}, false},
		{"directory file", DirectoryExists(), FilePath(file), true},
		{"directory missing", DirectoryExists(), FilePath(missing), true},
		{"wrong type", FileExists(), file, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != File {
				t.Fatalf("Kind() = %s", tt.v.Kind())
			}
			got, err := tt.v.Validate("--in", tt.value)
			if tt.fail {
				if err == nil {
					t.Errorf("expected error for %v", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if diff := cmp.Diff(tt.value, got); diff != "" {
				t.Errorf("value changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFuncValidator(t *testing.T) {
	even := Func(func(n int64) error {
		if n%2 != 0 {
			return fmt.Errorf("%d is odd", n)
		}
		return nil
	})
	if even.Kind() != Long {
		t.Fatalf("Kind() = %s, want LONG", even.Kind())
	}

	if _, err := even.Validate("--n", map[string][]int64{"a": {2, 4}}); err != nil {
		t.Errorf("Validate: %v", err)
	}

	_, err := even.Validate("--n", []int64{2, 3})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Reason != "3 is odd" {
		t.Errorf("expected reason from fn, got %v", err)
	}

	if _, err := even.Validate("--n", int32(2)); err == nil {
		t.Errorf("mismatched element type must be rejected")
	}
	if Func(func(int) error { return nil }).Kind() != 0 {
		t.Errorf("unsupported element types have no kind")
	}
}

// Package assert provides minimal test assertions with a uniform
// (t, expected, actual, msg) signature.
package assert

import (
	"cmp"
	"reflect"
	"strings"
	"testing"
)

func Equal(t *testing.T, expected, actual any, msg string) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func NotEqual(t *testing.T, unexpected, actual any, msg string) {
	t.Helper()
	if reflect.DeepEqual(unexpected, actual) {
		t.Errorf("%s: got %v, expected something else", msg, actual)
	}
}

func True(t *testing.T, v bool, msg string) {
	t.Helper()
	if !v {
		t.Errorf("%s: expected true", msg)
	}
}

func False(t *testing.T, v bool, msg string) {
	t.Helper()
	if v {
		t.Errorf("%s: expected false", msg)
	}
}

func Nil(t *testing.T, v any, msg string) {
	t.Helper()
	if !isNil(v) {
		t.Errorf("%s: expected nil, got %v", msg, v)
	}
}

func NotNil(t *testing.T, v any, msg string) {
	t.Helper()
	if isNil(v) {
		t.Errorf("%s: expected non-nil", msg)
	}
}

func Len(t *testing.T, v any, expected int, msg string) {
	t.Helper()
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String, reflect.Chan:
		if rv.Len() != expected {
			t.Errorf("%s: expected length %d, got %d (%v)", msg, expected, rv.Len(), v)
		}
	default:
		if v == nil && expected == 0 {
			return
		}
		t.Errorf("%s: cannot take length of %T", msg, v)
	}
}

func NoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

func Error(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error", msg)
	}
}

func Greater[T cmp.Ordered](t *testing.T, a, b T, msg string) {
	t.Helper()
	if !(a > b) {
		t.Errorf("%s: expected %v > %v", msg, a, b)
	}
}

func GreaterOrEqual[T cmp.Ordered](t *testing.T, a, b T, msg string) {
	t.Helper()
	if !(a >= b) {
		t.Errorf("%s: expected %v >= %v", msg, a, b)
	}
}

func Less[T cmp.Ordered](t *testing.T, a, b T, msg string) {
	t.Helper()
	if !(a < b) {
		t.Errorf("%s: expected %v < %v", msg, a, b)
	}
}

func LessOrEqual[T cmp.Ordered](t *testing.T, a, b T, msg string) {
	t.Helper()
	if !(a <= b) {
		t.Errorf("%s: expected %v <= %v", msg, a, b)
	}
}

func Contains(t *testing.T, s, substr string, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: %q does not contain %q", msg, s, substr)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Package keys derives cache keys from scalar or sequence input.
//
// A scalar becomes its string form. A sequence (slice or array) drops its
// falsy members ("", 0, NaN, false, nil) and joins the rest with "_".
// Pointers are members in their own right: a nil pointer is dropped, a
// non-nil one is kept even when it points at a zero value.
//
//	keys.Generate(42)                         // "42"
//	keys.Generate([]any{"a", "", "b", 0})     // "a_b"
//	keys.Generate([]any{21, "fr"})            // "21_fr"
package keys

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Separator joins the members of a sequence key.
const Separator = "_"

// ErrKeyGeneration is wrapped by every *Error returned from Generate.
var ErrKeyGeneration = errors.New("can't generate key")

// Error reports input that cannot be reduced to a key.
// Index is the offending sequence position, or -1 for a non-sequence input.
type Error struct {
	Index int
	Kind  reflect.Kind
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: unsupported key kind %s", ErrKeyGeneration, e.Kind)
	}
	return fmt.Sprintf("%v: unsupported kind %s at index %d", ErrKeyGeneration, e.Kind, e.Index)
}

func (e *Error) Unwrap() error { return ErrKeyGeneration }

// Generate returns the cache key for k. It is pure: equal inputs always give
// the same key.
func Generate(k any) (string, error) {
	if k == nil {
		return "undefined", nil
	}
	if rv := reflect.ValueOf(k); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "undefined", nil
	}
	switch v := k.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case []string:
		return joinStrings(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(k)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		s, ok := scalar(rv)
		if !ok {
			return "", &Error{Index: -1, Kind: rv.Kind()}
		}
		return s, nil
	}

	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i)
		if falsy(el) {
			continue
		}
		s, ok := element(el)
		if !ok {
			return "", &Error{Index: i, Kind: indirect(el).Kind()}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, Separator), nil
}

func joinStrings(ss []string) string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// element stringifies a non-falsy sequence member; byte slices and Stringers
// count as scalars.
func element(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case []byte:
			return string(x), true
		case fmt.Stringer:
			return x.String(), true
		}
	}
	return scalar(v)
}

func scalar(v reflect.Value) (string, bool) {
	v = indirect(v)
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(v.Float(), v.Type().Bits()), true
	case reflect.Invalid:
		return "undefined", true
	}
	return "", false
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// falsy reports whether a sequence member is dropped. A non-nil pointer is
// always kept, whatever it points to.
func falsy(v reflect.Value) bool {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Pointer:
		return v.IsNil()
	case reflect.Invalid:
		return true
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// indirect unwraps interfaces and pointers down to the underlying value.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

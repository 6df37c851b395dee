package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotScalar     = errors.New("target type is not a scalar")
	ErrNotAllowed    = errors.New("conversion is not allowed")
	ErrUnsupportedIn = errors.New("source value is not a scalar")
)

// Coerce converts an untyped scalar into a value of type dst.
//
// Conversion is best-effort: a string that is not a number becomes the number its
// leading digits spell (or zero), a fractional number loses its fraction, any
// non-empty unrecognised string is true. exact is false whenever such a lossy path
// was taken, so the caller decides whether that is acceptable.
//
// Nil always yields the zero value of dst.
func Coerce(src any, dst reflect.Type, allowed CategoryEnum) (out reflect.Value, exact bool, err error) {
	dstKind := Underlying(dst)
	if dstKind == 0 {
		return reflect.Value{}, false, fmt.Errorf("%w: %v", ErrNotScalar, dst)
	}

	out = reflect.New(dst).Elem()
	if src == nil {
		return out, true, nil
	}

	srcKind := FromValue(src)
	if srcKind == 0 {
		return reflect.Value{}, false, fmt.Errorf("%w: %T", ErrUnsupportedIn, src)
	}

	if !Allows(allowed, srcKind, dstKind) {
		return reflect.Value{}, false, fmt.Errorf("%w: %v to %v", ErrNotAllowed, srcKind, dstKind)
	}

	sv := reflect.ValueOf(src)
	if srcKind == dstKind && sv.Type().ConvertibleTo(dst) {
		out.Set(sv.Convert(dst))
		return out, true, nil
	}

	switch {
	case dstKind.IsSigned():
		n, ok := toInt64(sv, srcKind)
		if out.OverflowInt(n) {
			n, ok = clampInt(n, dstKind.bits()), false
		}
		out.SetInt(n)
		exact = ok

	case dstKind.IsUnsigned():
		n, ok := toUint64(sv, srcKind)
		if out.OverflowUint(n) {
			n, ok = uint64(1)<<dstKind.bits()-1, false
		}
		out.SetUint(n)
		exact = ok

	case dstKind.IsFloat():
		f, ok := toFloat64(sv, srcKind)
		if out.OverflowFloat(f) {
			ok = false
		}
		out.SetFloat(f)
		exact = ok

	case dstKind == KindBool:
		b, ok := toBool(sv, srcKind)
		out.SetBool(b)
		exact = ok

	case dstKind == KindString:
		s, ok := toString(sv, srcKind)
		out.SetString(s)
		exact = ok

	case dstKind == KindTime:
		t, ok := parseTime(sv.String())
		out.Set(reflect.ValueOf(t))
		exact = ok

	case dstKind == KindDuration:
		d, ok := parseDuration(sv.String())
		out.SetInt(int64(d))
		exact = ok

	default:
		return reflect.Value{}, false, fmt.Errorf("%w: %v", ErrNotScalar, dst)
	}

	return out, exact, nil
}

func toInt64(sv reflect.Value, kind KindEnum) (int64, bool) {
	switch {
	case kind.IsSigned():
		return sv.Int(), true
	case kind.IsUnsigned():
		u := sv.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, false
		}
		return int64(u), true
	case kind.IsFloat():
		return truncate(sv.Float())
	case kind == KindBool:
		if sv.Bool() {
			return 1, true
		}
		return 0, true
	case kind == KindString:
		return parseInt(sv.String())
	}

	return 0, false
}

func toUint64(sv reflect.Value, kind KindEnum) (uint64, bool) {
	if kind.IsUnsigned() {
		return sv.Uint(), true
	}

	n, ok := toInt64(sv, kind)
	if n < 0 {
		return 0, false
	}

	return uint64(n), ok
}

func toFloat64(sv reflect.Value, kind KindEnum) (float64, bool) {
	switch {
	case kind.IsSigned():
		return float64(sv.Int()), true
	case kind.IsUnsigned():
		return float64(sv.Uint()), true
	case kind.IsFloat():
		return sv.Float(), true
	case kind == KindBool:
		if sv.Bool() {
			return 1, true
		}
		return 0, true
	case kind == KindString:
		return parseFloat(sv.String())
	}

	return 0, false
}

func toBool(sv reflect.Value, kind KindEnum) (bool, bool) {
	switch {
	case kind == KindBool:
		return sv.Bool(), true
	case kind.IsSigned():
		n := sv.Int()
		return n != 0, n == 0 || n == 1
	case kind.IsUnsigned():
		n := sv.Uint()
		return n != 0, n <= 1
	case kind.IsFloat():
		f := sv.Float()
		return f != 0, f == 0 || f == 1
	case kind == KindString:
		switch strings.ToLower(strings.TrimSpace(sv.String())) {
		case "1", "true", "yes", "on", "y":
			return true, true
		case "", "0", "false", "no", "off", "n":
			return false, true
		}
		return true, false
	}

	return false, false
}

func toString(sv reflect.Value, kind KindEnum) (string, bool) {
	switch {
	case kind == KindString:
		return sv.String(), true
	case kind.IsSigned():
		return strconv.FormatInt(sv.Int(), 10), true
	case kind.IsUnsigned():
		return strconv.FormatUint(sv.Uint(), 10), true
	case kind == KindFloat32:
		return strconv.FormatFloat(sv.Float(), 'f', -1, 32), true
	case kind == KindFloat64:
		return strconv.FormatFloat(sv.Float(), 'f', -1, 64), true
	case kind == KindBool:
		if sv.Bool() {
			return "1", true
		}
		return "", true
	}

	return "", false
}

// parseInt accepts the longest integer prefix of s. An empty string is a valid zero.
func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return truncate(f)
	}

	for end := len(s) - 1; end > 0; end-- {
		n, err = strconv.ParseInt(s[:end], 10, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return n, false
		}
	}

	return 0, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}

	for end := len(s) - 1; end > 0; end-- {
		f, err = strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return f, false
		}
	}

	return 0, false
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	t := math.Trunc(f)
	switch {
	case t >= math.MaxInt64:
		return math.MaxInt64, false
	case t <= math.MinInt64:
		return math.MinInt64, false
	}

	return int64(t), t == f
}

func clampInt(n int64, bits int) int64 {
	limit := int64(1)<<(bits-1) - 1
	if n > limit {
		return limit
	}

	return -limit - 1
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}

	return d, true
}

package primitive_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"operation-history/primitive"
)

type OperCode int
type Label string

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   any
		dst   reflect.Type
		want  any
		exact bool
	}{
		{"numeric string to int", "42", reflect.TypeFor[int](), 42, true},
		{"padded numeric string", " 7 ", reflect.TypeFor[int](), 7, true},
		{"leading digits", "42abc", reflect.TypeFor[int](), 42, false},
		{"garbage to int", "abc", reflect.TypeFor[int](), 0, false},
		{"empty string to int", "", reflect.TypeFor[int](), 0, true},
		{"float string to int", "3.0", reflect.TypeFor[int](), 3, true},
		{"fraction truncated", 3.7, reflect.TypeFor[int](), 3, false},
		{"whole float to int", float64(12), reflect.TypeFor[int](), 12, true},
		{"bool to int", true, reflect.TypeFor[int](), 1, true},
		{"nil to int", nil, reflect.TypeFor[int](), 0, true},
		{"overflow clamps", 300, reflect.TypeFor[int8](), int8(127), false},
		{"negative to uint", -5, reflect.TypeFor[uint](), uint(0), false},
		{"one to bool", 1, reflect.TypeFor[bool](), true, true},
		{"zero to bool", 0, reflect.TypeFor[bool](), false, true},
		{"two to bool", 2, reflect.TypeFor[bool](), true, false},
		{"text true", "true", reflect.TypeFor[bool](), true, true},
		{"text false", "false", reflect.TypeFor[bool](), false, true},
		{"text zero", "0", reflect.TypeFor[bool](), false, true},
		{"empty text", "", reflect.TypeFor[bool](), false, true},
		{"other text is truthy", "maybe", reflect.TypeFor[bool](), true, false},
		{"int to string", 42, reflect.TypeFor[string](), "42", true},
		{"float to string", 1.5, reflect.TypeFor[string](), "1.5", true},
		{"true to string", true, reflect.TypeFor[string](), "1", true},
		{"false to string", false, reflect.TypeFor[string](), "", true},
		{"nil to string", nil, reflect.TypeFor[string](), "", true},
		{"string to float", "2.5kg", reflect.TypeFor[float64](), 2.5, false},
		{"named int", "5", reflect.TypeFor[OperCode](), OperCode(5), true},
		{"named string", "Вручение", reflect.TypeFor[Label](), Label("Вручение"), true},
		{"duration", "2h45m", reflect.TypeFor[time.Duration](), 2*time.Hour + 45*time.Minute, true},
		{"bad duration", "soon", reflect.TypeFor[time.Duration](), time.Duration(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, exact, err := primitive.Coerce(tt.src, tt.dst, primitive.CategoryAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Interface(), spew.Sdump(tt.src))
			assert.Equal(t, tt.exact, exact)
		})
	}
}

func TestCoerceTime(t *testing.T) {
	t.Parallel()

	out, exact, err := primitive.Coerce("2015-01-08T14:44:00.000+03:00", reflect.TypeFor[time.Time](), primitive.CategoryAll)
	require.NoError(t, err)
	assert.True(t, exact)

	got := out.Interface().(time.Time)
	assert.Equal(t, 2015, got.Year())
	assert.Equal(t, 11, got.UTC().Hour())

	_, exact, err = primitive.Coerce("yesterday", reflect.TypeFor[time.Time](), primitive.CategoryAll)
	require.NoError(t, err)
	assert.False(t, exact)

	now := time.Now()
	out, exact, err = primitive.Coerce(now, reflect.TypeFor[time.Time](), primitive.CategoryNone)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.True(t, now.Equal(out.Interface().(time.Time)))
}

func TestCoerceErrors(t *testing.T) {
	t.Parallel()

	_, _, err := primitive.Coerce("1", reflect.TypeFor[struct{}](), primitive.CategoryAll)
	require.ErrorIs(t, err, primitive.ErrNotScalar)

	_, _, err = primitive.Coerce(map[string]any{}, reflect.TypeFor[int](), primitive.CategoryAll)
	require.ErrorIs(t, err, primitive.ErrUnsupportedIn)

	_, _, err = primitive.Coerce("1", reflect.TypeFor[int](), primitive.CategoryNumericBool)
	require.ErrorIs(t, err, primitive.ErrNotAllowed)

	_, _, err = primitive.Coerce(10, reflect.TypeFor[time.Time](), primitive.CategoryAll)
	require.ErrorIs(t, err, primitive.ErrNotAllowed)
}

func TestCoerceLargeValues(t *testing.T) {
	t.Parallel()

	out, exact, err := primitive.Coerce("99999999999999999999", reflect.TypeFor[int64](), primitive.CategoryAll)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, int64(math.MaxInt64), out.Int())

	out, exact, err = primitive.Coerce(uint64(math.MaxUint64), reflect.TypeFor[int64](), primitive.CategoryAll)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, int64(math.MaxInt64), out.Int())

	_, exact, err = primitive.Coerce(math.NaN(), reflect.TypeFor[int](), primitive.CategoryAll)
	require.NoError(t, err)
	assert.False(t, exact)
}

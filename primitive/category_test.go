package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"operation-history/primitive"
)

func TestAllows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed primitive.CategoryEnum
		from    primitive.KindEnum
		to      primitive.KindEnum
		want    bool
	}{
		{"identity always", primitive.CategoryNone, primitive.KindString, primitive.KindString, true},
		{"widening int", primitive.CategorySafeNumber, primitive.KindInt8, primitive.KindInt64, true},
		{"narrowing int needs unsafe", primitive.CategorySafeNumber, primitive.KindInt64, primitive.KindInt8, false},
		{"narrowing int", primitive.CategoryUnsafeNumber, primitive.KindInt64, primitive.KindInt8, true},
		{"float to int", primitive.CategorySafeNumber, primitive.KindFloat64, primitive.KindInt, false},
		{"text number", primitive.CategoryTextNumber, primitive.KindString, primitive.KindInt, true},
		{"text number disabled", primitive.CategoryNumericBool, primitive.KindString, primitive.KindInt, false},
		{"numeric bool", primitive.CategoryNumericBool, primitive.KindInt, primitive.KindBool, true},
		{"textual bool", primitive.CategoryTextualBool, primitive.KindString, primitive.KindBool, true},
		{"datetime", primitive.CategoryDatetime, primitive.KindString, primitive.KindTime, true},
		{"no time from int", primitive.CategoryAll, primitive.KindInt, primitive.KindTime, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, primitive.Allows(tt.allowed, tt.from, tt.to))
		})
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, primitive.CategorySafeNumber, primitive.CategoryOf(primitive.KindUint16, primitive.KindInt32))
	assert.Equal(t, primitive.CategoryUnsafeNumber, primitive.CategoryOf(primitive.KindUint64, primitive.KindInt64))
	assert.Equal(t, primitive.CategorySafeNumber, primitive.CategoryOf(primitive.KindInt32, primitive.KindFloat64))
	assert.Equal(t, primitive.CategoryUnsafeNumber, primitive.CategoryOf(primitive.KindInt32, primitive.KindFloat32))
	assert.Equal(t, primitive.CategoryEnum(primitive.CategoryNone), primitive.CategoryOf(primitive.KindBool, primitive.KindTime))
}

func TestParseCategories(t *testing.T) {
	c, err := primitive.ParseCategories("text-number", " Textual-Bool ")
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryTextNumber|primitive.CategoryTextualBool, c)

	c, err = primitive.ParseCategories()
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryEnum(primitive.CategoryNone), c)

	c, err = primitive.ParseCategories("all")
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryEnum(primitive.CategoryAll), c)

	_, err = primitive.ParseCategories("strings")
	assert.ErrorIs(t, err, primitive.ErrUnknownCategory)
}

package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestDiagnosticsBuckets(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsEmpty())
	require.NoError(t, d.Err())

	d.AddInfo(CodeUnknownField, "ignored", "postal.Country", "Foo")
	d.AddWarning(CodeLossyCoercion, "truncated", "postal.ItemParameters", "Mass")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Err())

	d.AddError(CodeShapeMismatch, "expected a structure", "postal.OperationHistoryRecord", "ItemParameters", errBoom)
	assert.True(t, d.HasErrors())
	assert.Len(t, d.Infos, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Errors, 1)

	err := d.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "[postal.OperationHistoryRecord] ItemParameters: [shape-mismatch] expected a structure")
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo(CodeUnknownField, "x", "", "")
	b.AddWarning(CodeSingleElement, "y", "", "")
	b.AddError(CodeNotAllowed, "z", "", "", nil)

	a.Merge(b)
	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity:    SeverityInfo,
		Code:        CodeUnknownField,
		Message:     "field is not part of the type",
		FieldPath:   "Barcod",
		Suggestions: []string{"Barcode"},
	}

	assert.Equal(t, "Barcod: [unknown-field] field is not part of the type (did you mean Barcode?)", d.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2030-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2030-06-15T10:30:00.123+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), got)

	// The UTC day wins over the local one.
	got, err = ParseDate("2030-06-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 16, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "  ", "15/06/2030", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type sample struct {
		Name  string  `json:"name" validate:"required"`
		Price float64 `json:"price" validate:"gt=0"`
	}

	errs := ValidateStruct(sample{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Nil(t, ValidateStruct(sample{Name: "x", Price: 1}))
}

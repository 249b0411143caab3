package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("1996-08-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC), *date)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("08/08/1996")
	assert.Error(t, err)
}

func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	input := time.Date(1996, 8, 8, 22, 15, 0, 0, loc)

	assert.Equal(t, time.Date(1996, 8, 8, 0, 0, 0, 0, time.UTC), TruncateToDate(input))
}

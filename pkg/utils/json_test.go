package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSON(t *testing.T) {
	out, err := PrettyJSON(map[string]any{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"abc\"\n}", out)

	out, err = PrettyJSON([]byte(`{"status":"success"}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"status\": \"success\"\n}", out)

	_, err = PrettyJSON([]byte(`{quebrado`))
	assert.Error(t, err)
}

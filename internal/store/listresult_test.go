package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListResult(t *testing.T) {
	result := NewListResult([]int{1, 2, 3}, 10, 1, 3)
	assert.Equal(t, int64(10), result.TotalCount)
	assert.Equal(t, int32(4), result.TotalPages)
	assert.True(t, result.HasNextPage)

	result = NewListResult([]int{1}, 10, 4, 3)
	assert.False(t, result.HasNextPage)

	result = NewListResult[int](nil, 0, 1, 20)
	assert.Equal(t, int32(0), result.TotalPages)
	assert.False(t, result.HasNextPage)
}

func TestListResultJSONShape(t *testing.T) {
	data, err := json.Marshal(NewListResult([]string{"a"}, 1, 1, 20))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "Content")
	assert.Contains(t, raw, "TotalCount")
	assert.Contains(t, raw, "TotalPages")
	assert.Contains(t, raw, "HasNextPage")

	// Empty content is omitted, not serialized as null.
	data, err = json.Marshal(NewListResult[string](nil, 0, 1, 20))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Content")
}

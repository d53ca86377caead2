package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 5)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	res := NewResponse(data, &Params{Page: 1, Limit: 2}, 4)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, int64(4), res.Meta.Total)
	assert.Equal(t, 2, res.Meta.TotalPages)
}

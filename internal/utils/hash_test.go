package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCheckPassword(t *testing.T) {
	t.Parallel()
	h, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword(h, "hunter22"))
	assert.False(t, CheckPassword(h, "hunter23"))
}

func TestQueryInt(t *testing.T) {
	t.Parallel()
	q := url.Values{"limit": {"25"}, "offset": {"abc"}}

	assert.Equal(t, 25, QueryInt(q, "limit", 10))
	assert.Equal(t, 0, QueryInt(q, "offset", 0))
	assert.Equal(t, 10, QueryInt(q, "missing", 10))
}

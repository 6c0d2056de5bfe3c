package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	t.Parallel()
	body := "name,email,department\nDana Reyes,dana@example.com,Finance\nSam Okafor,sam@example.com,IT\n"
	r := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader(body))

	recs, err := readRecords(r)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Dana Reyes", recs[0]["name"])
	assert.Equal(t, "IT", recs[1]["department"])
}

func TestReadRecordsSnakeCaseHeaders(t *testing.T) {
	t.Parallel()
	body := "asset_tag,name,assigned_to\nLT-0042,ThinkPad,\n"
	r := httptest.NewRequest("POST", "/api/assets/import", strings.NewReader(body))

	recs, err := readRecords(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "LT-0042", recs[0]["asset_tag"])
}

func TestReadRecordsRejectsHeaderOnly(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader("name,email\n"))

	_, err := readRecords(r)
	assert.Error(t, err)
}

func TestReadRecordsShortRow(t *testing.T) {
	t.Parallel()
	// encoding/csv rejects rows with a different field count.
	body := "name,email\nDana Reyes\n"
	r := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader(body))

	_, err := readRecords(r)
	assert.Error(t, err)
}

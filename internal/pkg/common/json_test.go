package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonFixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSON(t *testing.T) {
	var v jsonFixture
	require.NoError(t, ParseJSON(`{"name": "Tomato", "count": 3}`, &v))
	assert.Equal(t, "Tomato", v.Name)
	assert.Equal(t, 3, v.Count)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v jsonFixture
	err := ParseJSON(`{"name": "Tomato"} {"name": "Onion"}`, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected extra JSON data")
}

func TestParseJSONStrict(t *testing.T) {
	var v jsonFixture
	assert.NoError(t, ParseJSONStrict(`{"name": "Tomato"}`, &v))

	err := ParseJSONStrict(`{"name": "Tomato", "unknown": true}`, &v)
	assert.Error(t, err)
}

func TestParseJSONBytes(t *testing.T) {
	var v jsonFixture
	require.NoError(t, ParseJSONBytes([]byte(`{"count": 7}`), &v))
	assert.Equal(t, 7, v.Count)
}

func TestDecodeJSON(t *testing.T) {
	var v jsonFixture
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name": "Onion"}`), &v))
	assert.Equal(t, "Onion", v.Name)
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(jsonFixture{Name: "Tomato", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Tomato","count":2}`, out)
}

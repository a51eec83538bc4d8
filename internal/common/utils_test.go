package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"clear sky":       "Clear sky",
		"city not found":  "City not found",
		"Invalid API key": "Invalid api key",
		"émile":           "Émile",
	}
	for in, want := range cases {
		assert.Equal(t, want, Capitalize(in), "input %q", in)
	}
}

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("dial tcp: Connection Refused", "connection refused"))
	assert.False(t, HasAny("EOF", "refused", "no such host"))
	assert.False(t, HasAny("anything"))
}

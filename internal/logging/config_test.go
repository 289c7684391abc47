package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		raw    string
		expect zerolog.Level
		ok     bool
	}{
		{raw: "", expect: zerolog.InfoLevel, ok: false},
		{raw: "DEBUG", expect: zerolog.DebugLevel, ok: true},
		{raw: " warning ", expect: zerolog.WarnLevel, ok: true},
		{raw: "off", expect: zerolog.Disabled, ok: true},
		{raw: "verbose", expect: zerolog.InfoLevel, ok: false},
	}
	for _, testCase := range testCases {
		actual, ok := parseLevel(testCase.raw)
		assert.Equal(t, testCase.expect, actual, testCase.raw)
		assert.Equal(t, testCase.ok, ok, testCase.raw)
	}
}

func TestDefaults(t *testing.T) {
	level, format := defaults(ProfileTest)
	assert.Equal(t, zerolog.DebugLevel, level)
	assert.Equal(t, "console", format)
	level, format = defaults(ProfileRuntime)
	assert.Equal(t, zerolog.InfoLevel, level)
	assert.Equal(t, "json", format)
}

package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerCallbackRoundTrip(t *testing.T) {
	data := buildAnswerCallback(42, 7, "C")

	sessionID, questionID, letter, ok := parseAnswerCallback(data)
	require.True(t, ok)
	assert.Equal(t, int64(42), sessionID)
	assert.Equal(t, int64(7), questionID)
	assert.Equal(t, "C", letter)
}

func TestParseAnswerCallbackRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"ans",
		"ans:1:2",
		"ans:x:2:A",
		"ans:1:y:A",
		"ans:1:2:",
		"ans:1:2:A:extra",
	} {
		_, _, _, ok := parseAnswerCallback(data)
		assert.False(t, ok, "expected %q to be rejected", data)
	}
}

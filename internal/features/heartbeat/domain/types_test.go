package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code     int
		expected Outcome
	}{
		{200, OutcomeOnline},
		{204, OutcomeOnline},
		{400, OutcomeOffline},
		{500, OutcomeOffline},
		{401, OutcomeUnknown},
		{418, OutcomeUnknown},
		{503, OutcomeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.code), "status %d", tt.code)
	}
}

func TestIsAllowedStatus(t *testing.T) {
	assert.True(t, IsAllowedStatus(StatusWaiting))
	assert.True(t, IsAllowedStatus(StatusTesting))
	assert.False(t, IsAllowedStatus("en_espera"))
	assert.False(t, IsAllowedStatus(""))
}

package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "no mentions",
			text:     "plain text without any handles",
			expected: nil,
		},
		{
			name:     "single mention",
			text:     "thanks @bob for the help",
			expected: []string{"bob"},
		},
		{
			name:     "repeated mention deduplicated",
			text:     "Thanks @bob and @bob for the help",
			expected: []string{"bob"},
		},
		{
			name:     "multiple mentions keep first-appearance order",
			text:     "@carol see what @alice said, @carol",
			expected: []string{"carol", "alice"},
		},
		{
			name:     "word characters only",
			text:     "ping @dev_ops2 and @user-name",
			expected: []string{"dev_ops2", "user"},
		},
		{
			name:     "mention at end of sentence",
			text:     "credit goes to @eve.",
			expected: []string{"eve"},
		},
		{
			name:     "bare at sign",
			text:     "meet me @ noon",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Scan(tt.text))
		})
	}
}

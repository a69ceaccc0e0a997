package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const maskChar = '*'

// The dictionary avoids short words that would collide inside others ("he" in "The")
func TestFilter_Mask(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	filter, err := NewFilter([]string{"badger", "snake", "mushroom"}, maskChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
			words:    []string{"badger"},
		},
		{
			name:     "Multiple occurrences",
			input:    "badger badger",
			expected: "****** ******",
			words:    []string{"badger", "badger"},
		},
		{
			name:     "Leet speak and internal punctuation",
			input:    "Look at B.4.d.g.€r !",
			expected: "Look at ********** !",
			words:    []string{"badger"},
		},
		{
			name:     "Uppercase and noise",
			input:    "S-N-A-K-E is a B.A.D.G.E.R",
			expected: "********* is a ***********",
			words:    []string{"snake", "badger"},
		},
		{
			name:     "Accents are kept",
			input:    "Un été avec un badger",
			expected: "Un été avec un ******",
			words:    []string{"badger"},
		},
		{
			name:     "Nothing to mask",
			input:    "Welcome to the chat",
			expected: "Welcome to the chat",
			words:    nil,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := filter.Mask(tt.input)
			require.Equal(t, tt.expected, content)
			require.Equal(t, tt.words, words)
		})
	}
}

func TestFilter_NoiseOnlyWordsAreIgnored(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	filter, err := NewFilter([]string{"...", ",,,", "", "badger"}, maskChar, log)
	req.NoError(err)

	content, words := filter.Mask("The badger is safe")
	req.Equal("The ****** is safe", content)
	req.Equal([]string{"badger"}, words)

	content, words = filter.Mask("Hello ...")
	req.Equal("Hello ...", content)
	req.Nil(words)
}

func TestFilter_EmptyDictionary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	filter, err := NewFilter(nil, maskChar, log)
	req.NoError(err)
	content, words := filter.Mask("anything goes")
	req.Equal("anything goes", content)
	req.Nil(words)

	var missing *Filter
	content, _ = missing.Mask("nil filter")
	req.Equal("nil filter", content)
}

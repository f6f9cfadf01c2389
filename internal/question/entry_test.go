package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []string
		word       string
		expected   Entry
	}{
		{
			name:       "no candidates",
			candidates: nil,
			word:       "漂亮",
			expected:   Entry{},
		},
		{
			name: "exact headword match preferred over first",
			candidates: []string{
				"101,美丽: pretty (label:書面語) (sim:靚)",
				"102,漂亮: pretty (sim:靚) (sim:好睇)",
			},
			word: "漂亮",
			expected: Entry{
				Text:         "102,漂亮: pretty (sim:靚) (sim:好睇)",
				ExactMatch:   true,
				Alternatives: []string{"靚", "好睇"},
			},
		},
		{
			name: "falls back to first candidate",
			candidates: []string{
				"  101,美丽: pretty (label:書面語) (sim:靚)  ",
				"102,好看: good looking",
			},
			word: "漂亮",
			expected: Entry{
				Text:         "101,美丽: pretty (label:書面語) (sim:靚)",
				ExactMatch:   false,
				Formal:       true,
				Alternatives: []string{"靚"},
			},
		},
		{
			name:       "formal marker via bang suffix",
			candidates: []string{"103,购买: to buy !!!formal"},
			word:       "购买",
			expected: Entry{
				Text:       "103,购买: to buy !!!formal",
				ExactMatch: true,
				Formal:     true,
			},
		},
		{
			name:       "mainland label counts as formal",
			candidates: []string{"104,土豆: potato (label:大陸)"},
			word:       "土豆",
			expected: Entry{
				Text:       "104,土豆: potato (label:大陸)",
				ExactMatch: true,
				Formal:     true,
			},
		},
		{
			name:       "entry without headword prefix",
			candidates: []string{"a free-form note about 漂亮"},
			word:       "漂亮",
			expected: Entry{
				Text: "a free-form note about 漂亮",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BestEntry(tt.candidates, tt.word))
		})
	}
}

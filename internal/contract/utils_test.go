package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "bottom of default range",
			input:    50.0,
			expected: CoolValue,
		},
		{
			name:     "just before mild",
			input:    51.9,
			expected: CoolValue,
		},
		{
			name:     "exactly mild",
			input:    52.0,
			expected: MildValue,
		},
		{
			name:     "just before warm",
			input:    54.9,
			expected: MildValue,
		},
		{
			name:     "exactly warm",
			input:    55.0,
			expected: WarmValue,
		},
		{
			name:     "just before hot",
			input:    57.9,
			expected: WarmValue,
		},
		{
			name:     "exactly hot",
			input:    58.0,
			expected: HotValue,
		},
		{
			name:     "top of default range",
			input:    60.0,
			expected: HotValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		temp  float64
		label string
	}{
		{"cool", 50.5, CoolValue},
		{"mild", 53, MildValue},
		{"warm", 56, WarmValue},
		{"hot", 59, HotValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.temp)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path selects stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		assert.FileExists(t, path)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "nope", "out.csv"))
		assert.Error(t, err)
	})
}

func TestGetJournalDBFilePath(t *testing.T) {
	path := GetJournalDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".tempdash_journal.db"))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

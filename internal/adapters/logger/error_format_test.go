package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain ending in stdlib",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "metadata merges on the same link",
			err: zerr.With(
				zerr.With(zerr.New("base"), "key1", "value1"),
				"key2", 42,
			),
			wantMessages: []string{"base"},
			wantMetadata: []map[string]any{{"key1": "value1", "key2": 42}},
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			require.Len(t, entries, len(tt.wantMessages))
			for i, entry := range entries {
				assert.Equal(t, tt.wantMessages[i], entry.Message)
				assert.Equal(t, tt.wantMetadata[i], entry.Metadata)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "main only",
			entries: []logger.ErrorEntry{{Message: "main error", Metadata: map[string]any{"key": "value"}}},
			want:    "Error: main error\n       key: value",
		},
		{
			name: "with cause",
			entries: []logger.ErrorEntry{
				{Message: "outer error"},
				{Message: "cause", Metadata: map[string]any{"cause_key": "cause_val"}},
			},
			want: "Error: outer error\n\n  Caused by:\n    → cause\n      cause_key: cause_val",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}

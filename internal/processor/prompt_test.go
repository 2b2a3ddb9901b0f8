package processor

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTrimRange(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end time.Duration
		hasEnd     bool
	}{
		{"both", "5\n00:00:12.5\n", 5 * time.Second, 12500 * time.Millisecond, true},
		{"empty end", "1:00\n\n", time.Minute, 0, false},
		{"empty start", "\n30\n", 0, 30 * time.Second, true},
		{"zero end", "0\n0\n", 0, 0, true},
		{"eof after start", "7", 7 * time.Second, 0, false},
		{"no input", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			var opts config.TrimOptions
			require.NoError(t, ReadTrimRange(strings.NewReader(tt.input), &out, &opts))
			assert.Equal(t, tt.start, opts.Start)
			assert.Equal(t, tt.end, opts.End)
			assert.Equal(t, tt.hasEnd, opts.HasEnd)
			assert.Equal(t, "Start time (s): End time (s): ", out.String())
		})
	}
}

func TestReadTrimRange_InvalidAnswer(t *testing.T) {
	var out bytes.Buffer
	var opts config.TrimOptions
	assert.Error(t, ReadTrimRange(strings.NewReader("soon\n10\n"), &out, &opts))
}

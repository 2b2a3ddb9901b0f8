package processor

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTool writes a shell script standing in for ffmpeg or ffprobe.
func writeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-ins need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// fakeFFmpeg records its arguments in argsFile and writes sizeKiB of zeros
// to the output path (the last argument, or the one before a trailing -y).
func fakeFFmpeg(t *testing.T, argsFile string, sizeKiB int) string {
	return writeTool(t, "ffmpeg", fmt.Sprintf(`echo "$@" > %q
last=""; prev=""
for a in "$@"; do prev="$last"; last="$a"; done
if [ "$last" = "-y" ]; then out="$prev"; else out="$last"; fi
dd if=/dev/zero of="$out" bs=1024 count=%d 2>/dev/null`, argsFile, sizeKiB))
}

func fakeFFprobe(t *testing.T, width, height int, duration float64) string {
	return writeTool(t, "ffprobe", fmt.Sprintf(`printf '%d\n%d\n%f\n'`, width, height, duration))
}

func inputFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x42}, 2048), 0644))
	return path
}

func bufferedLogger() (hclog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace}), &buf
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"video.mp4", "_compressed", "video_compressed.mp4"},
		{"/tmp/my clip.final.mkv", "_trimmed", "/tmp/my clip.final_trimmed.mkv"},
		{"noext", "_audio", "noext_audio"},
		{"dir.v2/noext", "_audio", "dir.v2/noext_audio"},
		{".hidden", "_audio", ".hidden_audio"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.path, tt.suffix))
	}
}

func TestWarnIfMissing(t *testing.T) {
	logger, buf := bufferedLogger()
	assert.True(t, warnIfMissing(logger, inputFile(t, "a.mp4")))
	assert.Empty(t, buf.String())

	assert.False(t, warnIfMissing(logger, filepath.Join(t.TempDir(), "absent.mp4")))
	assert.Contains(t, buf.String(), "input file not found")
}

func TestCheckFreeSpace(t *testing.T) {
	logger, buf := bufferedLogger()
	dir := t.TempDir()

	assert.True(t, checkFreeSpace(logger, dir, 1))
	assert.False(t, checkFreeSpace(logger, dir, math.MaxUint64))
	assert.Contains(t, buf.String(), "not have enough free space")
}

package ffmpeg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagValue returns the argument following flag.
func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	i := indexOf(args, flag)
	require.GreaterOrEqual(t, i, 0, "flag %s missing from %v", flag, args)
	require.Less(t, i+1, len(args), "flag %s has no value in %v", flag, args)
	return args[i+1]
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

func TestCompressStream(t *testing.T) {
	args := CompressStream("in.mp4", "in_compressed.mp4", EncodeSettings{
		VideoBitrateKbps: 1302,
		AudioBitrateKbps: 96,
		VideoCodec:       "libx264",
		AudioCodec:       "aac",
		Preset:           "medium",
		Scale:            &VideoDimensions{Width: 1280, Height: 720},
	}).GetArgs()

	assert.Equal(t, "in.mp4", flagValue(t, args, "-i"))
	assert.Equal(t, "1302k", flagValue(t, args, "-b:v"))
	assert.Equal(t, "96k", flagValue(t, args, "-b:a"))
	assert.Equal(t, "libx264", flagValue(t, args, "-c:v"))
	assert.Equal(t, "aac", flagValue(t, args, "-c:a"))
	assert.Equal(t, "medium", flagValue(t, args, "-preset"))
	assert.Equal(t, "+faststart", flagValue(t, args, "-movflags"))
	assert.Equal(t, "scale=1280:720", flagValue(t, args, "-vf"))
	assert.Contains(t, args, "in_compressed.mp4")
	assert.Contains(t, args, "-y")
}

func TestCompressStream_NoScale(t *testing.T) {
	args := CompressStream("in.mp4", "out.mp4", EncodeSettings{
		VideoBitrateKbps: 1000,
		AudioBitrateKbps: 128.5,
		VideoCodec:       "libx264",
		AudioCodec:       "aac",
		Preset:           "medium",
	}).GetArgs()

	assert.NotContains(t, args, "-vf")
	assert.Equal(t, "128.5k", flagValue(t, args, "-b:a"))
}

func TestTrimStream(t *testing.T) {
	args := TrimStream("clip.mov", "clip_trimmed.mov", 5*time.Second, 90*time.Second+250*time.Millisecond).GetArgs()

	assert.Equal(t, "00:00:05.000", flagValue(t, args, "-ss"))
	assert.Equal(t, "00:01:30.250", flagValue(t, args, "-to"))
	assert.Equal(t, "copy", flagValue(t, args, "-c"))
	assert.Less(t, indexOf(args, "-ss"), indexOf(args, "-i"), "seek must be an input option")
	assert.Less(t, indexOf(args, "-to"), indexOf(args, "-i"), "end must be an input option")
	assert.Contains(t, args, "clip_trimmed.mov")
	assert.Contains(t, args, "-y")
}

func TestTrimStream_OpenEnded(t *testing.T) {
	args := TrimStream("clip.mov", "clip_trimmed.mov", 0, 0).GetArgs()
	assert.Equal(t, "00:00:00.000", flagValue(t, args, "-ss"))
	assert.NotContains(t, args, "-to")
}

func TestExtractAudioStream(t *testing.T) {
	args := ExtractAudioStream("talk.mp4", "talk_audio.mp4").GetArgs()

	assert.Contains(t, args, "-vn")
	assert.Equal(t, "copy", flagValue(t, args, "-c:a"))
	assert.Equal(t, "talk.mp4", flagValue(t, args, "-i"))
	assert.Contains(t, args, "talk_audio.mp4")
	assert.NotContains(t, args, "")
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01.500"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03.000"},
		{26 * time.Hour, "26:00:00.000"},
		{1234567 * time.Microsecond, "00:00:01.235"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.in))
	}
}

func TestFormatKbps(t *testing.T) {
	assert.Equal(t, "96k", FormatKbps(96))
	assert.Equal(t, "0k", FormatKbps(0))
	assert.Equal(t, "64.25k", FormatKbps(64.25))
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "ffmpeg -i a.mp4 out.mp4", CommandLine("ffmpeg", []string{"-i", "a.mp4", "out.mp4"}))
}

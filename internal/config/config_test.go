package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video-toolkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), d)
	assert.Equal(t, float64(10), d.TargetSizeMB)
	assert.Equal(t, float64(96), d.AudioBitrateKbps)
	assert.Equal(t, "medium", d.Preset)
}

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	path := writeConfig(t, `
target_size_mb: 25
tools:
  ffmpeg: /opt/ffmpeg/bin/ffmpeg
`)
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float64(25), d.TargetSizeMB)
	assert.Equal(t, float64(DefaultAudioBitrateKbps), d.AudioBitrateKbps)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", d.Tools.FFmpeg)
	assert.Equal(t, DefaultFFprobe, d.Tools.FFprobe)
}

func TestLoad_EmptyFile(t *testing.T) {
	d, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), d)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", "target_size: 10\n"},
		{"zero target", "target_size_mb: 0\n"},
		{"negative audio", "audio_bitrate_kbps: -5\n"},
		{"empty tool", "tools:\n  ffprobe: \"\"\n"},
		{"malformed", "target_size_mb: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

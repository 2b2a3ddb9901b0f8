package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CompressOptions defines options for compressing a video toward a size
type CompressOptions struct {
	InputPath        string
	TargetSizeMB     float64
	AudioBitrateKbps float64
	TargetPlatform   string
	Preset           string // x264 speed/quality preset
	VideoCodec       string
	AudioCodec       string
	Tools            Tools
}

// TrimOptions defines options for cutting a video by stream copy
type TrimOptions struct {
	InputPath string
	Start     time.Duration
	End       time.Duration
	HasEnd    bool // false keeps everything after Start
	Tools     Tools
}

// ExtractAudioOptions defines options for copying the audio track out of a video
type ExtractAudioOptions struct {
	InputPath string
	Tools     Tools
}

// InfoOptions defines options for inspecting a video
type InfoOptions struct {
	InputPath        string
	TargetSizeMB     float64
	AudioBitrateKbps float64
	Tools            Tools
}

// Tools names the external binaries. Bare names are looked up on PATH.
type Tools struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

// Defaults is the optional YAML defaults file.
type Defaults struct {
	TargetSizeMB     float64 `yaml:"target_size_mb"`
	AudioBitrateKbps float64 `yaml:"audio_bitrate_kbps"`
	Preset           string  `yaml:"preset"`
	TargetPlatform   string  `yaml:"target_platform"`
	Tools            Tools   `yaml:"tools"`
}

const (
	DefaultTargetSizeMB     = 10
	DefaultAudioBitrateKbps = 96
	DefaultPreset           = "medium"
	DefaultVideoCodec       = "libx264"
	DefaultAudioCodec       = "aac"

	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"

	// Output name suffixes, inserted before the input's extension
	CompressedSuffix = "_compressed"
	TrimmedSuffix    = "_trimmed"
	AudioSuffix      = "_audio"
)

// Default returns the built-in defaults.
func Default() Defaults {
	return Defaults{
		TargetSizeMB:     DefaultTargetSizeMB,
		AudioBitrateKbps: DefaultAudioBitrateKbps,
		Preset:           DefaultPreset,
		Tools: Tools{
			FFmpeg:  DefaultFFmpeg,
			FFprobe: DefaultFFprobe,
		},
	}
}

// Load reads a YAML defaults file on top of Default. An empty path returns
// the built-in defaults.
func Load(path string) (Defaults, error) {
	d := Default()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return d, errors.Wrap(err, "failed to read config file")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return d, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := d.Validate(); err != nil {
		return d, errors.Wrapf(err, "invalid config file %s", path)
	}
	return d, nil
}

// Validate checks the values a defaults file may set.
func (d Defaults) Validate() error {
	if d.TargetSizeMB <= 0 {
		return errors.Errorf("target_size_mb must be positive, got %v", d.TargetSizeMB)
	}
	if d.AudioBitrateKbps < 0 {
		return errors.Errorf("audio_bitrate_kbps must not be negative, got %v", d.AudioBitrateKbps)
	}
	if d.Tools.FFmpeg == "" || d.Tools.FFprobe == "" {
		return errors.New("tools.ffmpeg and tools.ffprobe must not be empty")
	}
	return nil
}

// ApplyDefaults fills unset encoder fields with the built-in defaults.
func (o *CompressOptions) ApplyDefaults() {
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.VideoCodec == "" {
		o.VideoCodec = DefaultVideoCodec
	}
	if o.AudioCodec == "" {
		o.AudioCodec = DefaultAudioCodec
	}
}

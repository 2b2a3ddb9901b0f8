// Package videoprocessor is the entry point for compressing, trimming,
// inspecting and extracting audio from video files with ffmpeg.
package videoprocessor

import (
	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/ZacxDev/video-toolkit/internal/platform"
	"github.com/ZacxDev/video-toolkit/internal/processor"
	"github.com/hashicorp/go-hclog"
)

type (
	CompressOptions     = config.CompressOptions
	TrimOptions         = config.TrimOptions
	ExtractAudioOptions = config.ExtractAudioOptions
	InfoOptions         = config.InfoOptions
	Tools               = config.Tools

	CompressResult = processor.CompressResult
	Result         = processor.Result
	AudioResult    = processor.AudioResult
	InfoResult     = processor.InfoResult
	VideoMetadata  = ffmpeg.VideoMetadata
)

// PlatformSpec describes a named compression target
type PlatformSpec struct {
	Name             string
	MaxFileSize      int64   // in bytes
	MaxFileSizeMB    float64 // MaxFileSize in MB (1024*1024 bytes)
	VideoCodec       string
	AudioCodec       string
	AudioBitrateKbps float64
}

// GetSupportedPlatforms returns a list of supported platforms
func GetSupportedPlatforms() []string {
	return processor.GetSupportedPlatforms()
}

// GetPlatformSpec returns the limits and codecs of a supported platform.
func GetPlatformSpec(name string) (PlatformSpec, error) {
	p, err := platform.Get(name)
	if err != nil {
		return PlatformSpec{}, err
	}
	return PlatformSpec{
		Name:             p.GetName(),
		MaxFileSize:      p.GetMaxFileSize(),
		MaxFileSizeMB:    platform.MaxFileSizeMB(p),
		VideoCodec:       p.GetVideoCodec(),
		AudioCodec:       p.GetAudioCodec(),
		AudioBitrateKbps: p.GetAudioBitrate(),
	}, nil
}

// Compress re-encodes opts.InputPath to <base>_compressed<ext>, aiming at
// opts.TargetSizeMB. When the encode overshoots, the result is returned
// together with an error of kind types.ErrorKindTargetExceeded.
func Compress(opts *CompressOptions, logger hclog.Logger) (*CompressResult, error) {
	return processor.NewCompressor(opts, logger).Process()
}

// Trim copies the range [Start, End) of opts.InputPath to <base>_trimmed<ext>.
func Trim(opts *TrimOptions, logger hclog.Logger) (*Result, error) {
	return processor.NewTrimmer(opts, logger).Process()
}

// ExtractAudio copies the audio track of opts.InputPath to <base>_audio<ext>.
func ExtractAudio(opts *ExtractAudioOptions, logger hclog.Logger) (*AudioResult, error) {
	return processor.NewAudioExtractor(opts, logger).Process()
}

// Info reports metadata for opts.InputPath and the plan Compress would use.
func Info(opts *InfoOptions, logger hclog.Logger) (*InfoResult, error) {
	return processor.NewInspector(opts, logger).Process()
}

package processor

import (
	"fmt"
	"path/filepath"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/ZacxDev/video-toolkit/internal/planner"
	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// CompressResult describes a finished compression
type CompressResult struct {
	OutputPath string
	Plan       *planner.EncodingPlan
	OutputSize int64
}

// OutputSizeMB is the output size in MB (1024*1024 bytes).
func (r *CompressResult) OutputSizeMB() float64 {
	return float64(r.OutputSize) / 1024 / 1024
}

// Process probes the input, plans the encode, runs ffmpeg and checks the
// output against the target size.
func (c *Compressor) Process() (*CompressResult, error) {
	outputPath := OutputPath(c.opts.InputPath, config.CompressedSuffix)

	c.logger.Info("starting compression",
		"input", c.opts.InputPath,
		"target_mb", c.opts.TargetSizeMB,
		"audio_kbps", c.opts.AudioBitrateKbps)
	if c.opts.TargetPlatform != "" {
		c.logger.Debug("using platform defaults", "platform", c.opts.TargetPlatform)
	}

	probe, err := c.ffmpeg.ProbeStream(c.opts.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get video duration")
	}

	plan, err := c.planner.Plan(probe.DurationSeconds, probe.Width, probe.Height,
		c.opts.TargetSizeMB, c.opts.AudioBitrateKbps)
	if err != nil {
		return nil, err
	}
	c.logger.Info("calculated target video bitrate",
		"kbps", fmt.Sprintf("%.2f", plan.VideoBitrateKbps))

	settings := ffmpeg.EncodeSettings{
		VideoBitrateKbps: plan.RoundedVideoKbps(),
		AudioBitrateKbps: plan.AudioBitrateKbps,
		VideoCodec:       c.opts.VideoCodec,
		AudioCodec:       c.opts.AudioCodec,
		Preset:           c.opts.Preset,
	}
	if plan.Scale != nil {
		settings.Scale = &ffmpeg.VideoDimensions{
			Width:  plan.Scale.Width,
			Height: plan.Scale.Height,
		}
		c.logger.Info("applying resolution scale", "resolution", plan.Scale.String())
	}

	targetBytes := uint64(c.opts.TargetSizeMB * 1024 * 1024)
	checkFreeSpace(c.logger, filepath.Dir(outputPath), targetBytes)

	stream := ffmpeg.CompressStream(c.opts.InputPath, outputPath, settings)
	if err := c.ffmpeg.Run("compress", c.opts.InputPath, stream); err != nil {
		return nil, err
	}
	c.logger.Info("compression finished", "output", outputPath)

	result := &CompressResult{
		OutputPath: outputPath,
		Plan:       plan,
		OutputSize: fileSize(outputPath),
	}
	if !fileExists(outputPath) {
		return result, types.NewError(types.ErrorKindToolFailed, "compress", outputPath,
			errors.New("failed to create output file"))
	}

	c.logger.Info("actual output file size",
		"size", humanize.IBytes(uint64(result.OutputSize)),
		"mb", fmt.Sprintf("%.2f", result.OutputSizeMB()))

	if result.OutputSizeMB() > c.opts.TargetSizeMB {
		return result, types.NewError(types.ErrorKindTargetExceeded, "compress", outputPath,
			errors.Errorf("failed to compress below target: %.2f MB > %v MB",
				result.OutputSizeMB(), c.opts.TargetSizeMB))
	}
	return result, nil
}

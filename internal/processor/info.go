package processor

import (
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/ZacxDev/video-toolkit/internal/planner"
)

// InfoResult is the metadata of a video and the plan compress would use
type InfoResult struct {
	Metadata *ffmpeg.VideoMetadata
	Plan     *planner.EncodingPlan
}

// Process probes the input and plans a compression without running ffmpeg.
func (i *Inspector) Process() (*InfoResult, error) {
	metadata, err := i.ffmpeg.GetVideoMetadata(i.opts.InputPath)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("video metadata",
		"duration", metadata.Duration,
		"resolution", planner.Resolution{Width: metadata.Width, Height: metadata.Height}.String(),
		"codec", metadata.Codec)

	plan, err := i.planner.Plan(metadata.Duration, metadata.Width, metadata.Height,
		i.opts.TargetSizeMB, i.opts.AudioBitrateKbps)
	if err != nil {
		return nil, err
	}

	return &InfoResult{
		Metadata: metadata,
		Plan:     plan,
	}, nil
}

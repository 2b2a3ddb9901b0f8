// Package planner computes the encoding plan handed to the transcoder: a
// target video bitrate derived from the desired output size, and an optional
// downscale to the next standard 16:9 resolution. It performs no I/O.
package planner

import (
	"fmt"
	"math"

	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

const (
	// MinVideoBitrateKbps replaces a computed video bitrate that is zero or
	// negative. The output may then exceed the requested size.
	MinVideoBitrateKbps = 1000

	aspectTolerance = 0.01
	bitsPerMB       = 8 * 1024 * 1024
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Presets lists the standard 16:9 sizes, descending by height.
var Presets = []Resolution{
	{3840, 2160}, // 4K UHD
	{2560, 1440},
	{1920, 1080},
	{1280, 720},
	{854, 480},
	{640, 360},
	{426, 240},
}

// EncodingPlan holds the parameters for one encode.
type EncodingPlan struct {
	VideoBitrateKbps float64
	AudioBitrateKbps float64
	// Scale is nil when the source keeps its native resolution.
	Scale *Resolution
	// Floored is set when VideoBitrateKbps was replaced by MinVideoBitrateKbps.
	Floored bool
}

// RoundedVideoKbps is the video bitrate as written on the command line.
func (p *EncodingPlan) RoundedVideoKbps() int64 {
	return int64(math.RoundToEven(p.VideoBitrateKbps))
}

// Planner turns probe results into an EncodingPlan. Warnings go to logger.
type Planner struct {
	logger hclog.Logger
}

// New returns a Planner. A nil logger discards warnings.
func New(logger hclog.Logger) *Planner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Planner{logger: logger}
}

// SelectTargetResolution returns the first preset strictly shorter than the
// source. A source that already matches a preset height is still stepped down
// one size. ok is false when the source is at or below the smallest preset.
func (p *Planner) SelectTargetResolution(width, height int) (Resolution, bool) {
	aspect := float64(width) / float64(height)
	if math.Abs(aspect-16.0/9.0) > aspectTolerance {
		p.logger.Warn("source aspect ratio is not 16:9, scaling to a 16:9 preset may distort the picture",
			"aspect", fmt.Sprintf("%.2f", aspect))
	}

	i := slices.IndexFunc(Presets, func(r Resolution) bool {
		return height > r.Height
	})
	if i < 0 {
		p.logger.Info("resolution is at or below the smallest standard 16:9 size, no scaling applied",
			"source", Resolution{width, height})
		return Resolution{}, false
	}

	target := Presets[i]
	p.logger.Info("calculated target resolution",
		"source", Resolution{width, height}, "target", target)
	return target, true
}

// ComputeVideoBitrate returns the video bitrate in kbps that makes an output
// of durationSeconds come out at targetSizeMB once audioBitrateKbps is
// accounted for. A non-positive result is replaced by MinVideoBitrateKbps.
func (p *Planner) ComputeVideoBitrate(durationSeconds, targetSizeMB, audioBitrateKbps float64) float64 {
	kbps, _ := p.videoBitrate(durationSeconds, targetSizeMB, audioBitrateKbps)
	return kbps
}

func (p *Planner) videoBitrate(durationSeconds, targetSizeMB, audioBitrateKbps float64) (float64, bool) {
	totalBps := targetSizeMB * bitsPerMB / durationSeconds
	videoBps := math.Max(0, totalBps-audioBitrateKbps*1000)
	kbps := videoBps / 1000
	if kbps <= 0 {
		p.logger.Warn("calculated video bitrate is too low, continuing with minimum bitrate",
			"min_kbps", MinVideoBitrateKbps)
		return MinVideoBitrateKbps, true
	}
	return kbps, false
}

// MakeEven rounds v down to an even number.
func MakeEven[T constraints.Integer](v T) T {
	return v / 2 * 2
}

// Plan validates the inputs and builds the full plan for one source.
func (p *Planner) Plan(durationSeconds float64, width, height int, targetSizeMB, audioBitrateKbps float64) (*EncodingPlan, error) {
	switch {
	case !(durationSeconds > 0) || math.IsInf(durationSeconds, 0):
		return nil, types.NewError(types.ErrorKindDegeneratePlan, "plan", "",
			fmt.Errorf("duration must be positive, got %v", durationSeconds))
	case width <= 0 || height <= 0:
		return nil, types.NewError(types.ErrorKindDegeneratePlan, "plan", "",
			fmt.Errorf("dimensions must be positive, got %dx%d", width, height))
	case !(targetSizeMB > 0):
		return nil, types.NewError(types.ErrorKindDegeneratePlan, "plan", "",
			fmt.Errorf("target size must be positive, got %v MB", targetSizeMB))
	case audioBitrateKbps < 0:
		return nil, types.NewError(types.ErrorKindDegeneratePlan, "plan", "",
			fmt.Errorf("audio bitrate must not be negative, got %v kbps", audioBitrateKbps))
	}

	plan := &EncodingPlan{AudioBitrateKbps: audioBitrateKbps}
	if target, ok := p.SelectTargetResolution(width, height); ok {
		plan.Scale = &Resolution{
			Width:  MakeEven(target.Width),
			Height: MakeEven(target.Height),
		}
	}

	plan.VideoBitrateKbps, plan.Floored = p.videoBitrate(durationSeconds, targetSizeMB, audioBitrateKbps)
	return plan, nil
}

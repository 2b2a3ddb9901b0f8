package processor

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/pkg/errors"
)

// Process copies the requested range of the input into <base>_trimmed<ext>.
func (t *Trimmer) Process() (*Result, error) {
	if t.opts.Start < 0 {
		return nil, types.NewError(types.ErrorKindInvalidArgument, "trim", t.opts.InputPath,
			errors.Errorf("start time must not be negative, got %s", t.opts.Start))
	}
	if t.opts.HasEnd && t.opts.End <= t.opts.Start {
		return nil, types.NewError(types.ErrorKindInvalidArgument, "trim", t.opts.InputPath,
			errors.Errorf("end time %s must be after start time %s",
				ffmpeg.FormatTimestamp(t.opts.End), ffmpeg.FormatTimestamp(t.opts.Start)))
	}

	outputPath := OutputPath(t.opts.InputPath, config.TrimmedSuffix)
	if warnIfMissing(t.logger, t.opts.InputPath) {
		checkFreeSpace(t.logger, filepath.Dir(outputPath), uint64(fileSize(t.opts.InputPath)))
	}

	var end time.Duration
	if t.opts.HasEnd {
		end = t.opts.End
	}
	stream := ffmpeg.TrimStream(t.opts.InputPath, outputPath, t.opts.Start, end)
	if err := t.ffmpeg.Run("trim", t.opts.InputPath, stream); err != nil {
		return nil, errors.Wrap(err, "error trimming video")
	}

	t.logger.Info("video successfully trimmed", "output", outputPath)
	return &Result{
		OutputPath: outputPath,
		OutputSize: fileSize(outputPath),
	}, nil
}

// maxTimestampSeconds is the largest time.Duration in seconds.
const maxTimestampSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseTimestamp accepts the time forms ffmpeg understands ("90", "90.5",
// "1:30", "00:01:30.250") as well as Go durations ("1m30s", "500ms").
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty timestamp")
	}

	var seconds float64
	switch {
	case strings.Contains(s, ":"):
		v, err := parseClock(s)
		if err != nil {
			return 0, err
		}
		seconds = v
	default:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			seconds = v
			break
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, errors.Errorf("invalid timestamp %q", s)
		}
		seconds = d.Seconds()
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, errors.Errorf("invalid timestamp %q", s)
	}
	if seconds < 0 {
		return 0, errors.Errorf("timestamp %q must not be negative", s)
	}
	if seconds > maxTimestampSeconds {
		return 0, errors.Errorf("timestamp %q is out of range", s)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

// parseClock parses [HH:]MM:SS[.fraction].
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errors.Errorf("invalid timestamp %q", s)
	}

	var total float64
	for i, part := range parts {
		last := i == len(parts)-1
		if part == "" || (!last && strings.ContainsAny(part, ".eE+-")) {
			return 0, errors.Errorf("invalid timestamp %q", s)
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, errors.Errorf("invalid timestamp %q", s)
		}
		if i > 0 && v >= 60 {
			return 0, errors.Errorf("invalid timestamp %q: minutes and seconds must be below 60", s)
		}
		total = total*60 + v
	}
	return total, nil
}

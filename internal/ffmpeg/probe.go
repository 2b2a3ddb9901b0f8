package ffmpeg

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/pkg/errors"
)

// MediaProbe is the first video stream's duration and frame size.
type MediaProbe struct {
	DurationSeconds float64
	Width           int
	Height          int
}

// ProbeArgs returns the ffprobe arguments that print width, height and
// duration of the first video stream, one value per line.
func ProbeArgs(inputPath string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}
}

// ProbeStream runs ffprobe against inputPath.
func (p *Processor) ProbeStream(inputPath string) (*MediaProbe, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, types.NewError(types.ErrorKindInputMissing, "probe", inputPath,
			errors.Wrap(err, "input video file not found"))
	}

	bin, err := lookPath("probe", p.tools.FFprobe)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, ProbeArgs(inputPath)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.logger.Debug("probing video", "command", CommandLine(bin, cmd.Args[1:]))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			p.logger.Error("ffprobe failed", "stderr", msg)
		}
		return nil, classifyExecError("probe", inputPath, p.tools.FFprobe, err)
	}

	probe, err := parseProbeOutput(stdout.String())
	if err != nil {
		return nil, types.NewError(types.ErrorKindProbeOutput, "probe", inputPath, err)
	}

	p.logger.Info("probed video",
		"duration", strconv.FormatFloat(probe.DurationSeconds, 'f', 2, 64),
		"width", probe.Width,
		"height", probe.Height)
	return probe, nil
}

// parseProbeOutput expects exactly three lines: width, height, duration.
func parseProbeOutput(out string) (*MediaProbe, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		return nil, errors.Errorf("unexpected ffprobe output: %q", out)
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	width, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse width from ffprobe output %q", out)
	}
	height, err := strconv.Atoi(lines[1])
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse height from ffprobe output %q", out)
	}
	duration, err := strconv.ParseFloat(lines[2], 64)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse duration from ffprobe output %q", out)
	}

	if width <= 0 || height <= 0 || !(duration > 0) {
		return nil, errors.Errorf("ffprobe reported a degenerate stream: %dx%d, %v s", width, height, duration)
	}

	return &MediaProbe{
		DurationSeconds: duration,
		Width:           width,
		Height:          height,
	}, nil
}

package ffmpeg

import (
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoDimensions represents width and height of a video
type VideoDimensions struct {
	Width  int
	Height int
}

// EncodeSettings are the values placed on a compress command line.
type EncodeSettings struct {
	VideoBitrateKbps int64
	AudioBitrateKbps float64
	VideoCodec       string
	AudioCodec       string
	Preset           string
	Scale            *VideoDimensions // nil keeps the source size
}

// CompressStream re-encodes inputPath at a fixed bitrate, optionally scaled,
// overwriting outputPath.
func CompressStream(inputPath, outputPath string, s EncodeSettings) *ffmpeg.Stream {
	outputKwargs := ffmpeg.KwArgs{
		"b:v":      fmt.Sprintf("%dk", s.VideoBitrateKbps),
		"b:a":      FormatKbps(s.AudioBitrateKbps),
		"c:v":      s.VideoCodec,
		"preset":   s.Preset,
		"c:a":      s.AudioCodec,
		"movflags": "+faststart",
	}
	if s.Scale != nil {
		outputKwargs["vf"] = fmt.Sprintf("scale=%d:%d", s.Scale.Width, s.Scale.Height)
	}

	return ffmpeg.Input(inputPath).
		Output(outputPath, outputKwargs).
		OverWriteOutput()
}

// TrimStream copies the streams of inputPath between start and end without
// re-encoding. A zero end copies through to the end of the input.
func TrimStream(inputPath, outputPath string, start, end time.Duration) *ffmpeg.Stream {
	inputKwargs := ffmpeg.KwArgs{
		"ss": FormatTimestamp(start),
	}
	if end > 0 {
		inputKwargs["to"] = FormatTimestamp(end)
	}

	return ffmpeg.Input(inputPath, inputKwargs).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput()
}

// ExtractAudioStream drops the video and copies the audio track as is.
// ffmpeg asks before overwriting an existing output.
func ExtractAudioStream(inputPath, outputPath string) *ffmpeg.Stream {
	return ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vn":  "",
			"c:a": "copy",
		})
}

// FormatKbps renders a bitrate in ffmpeg's "k" suffix form without rounding.
func FormatKbps(kbps float64) string {
	return strconv.FormatFloat(kbps, 'f', -1, 64) + "k"
}

// FormatTimestamp renders d as HH:MM:SS.mmm.
func FormatTimestamp(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

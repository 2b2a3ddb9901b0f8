package ffmpeg

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/pkg/errors"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration   float64
	Width      int
	Height     int
	Codec      string
	BitRate    int64 // bps, zero when unknown
	Size       int64 // bytes, zero when unknown
	FormatName string
	HasAudio   bool
}

type probeJSON struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
		NbFrames   string `json:"nb_frames"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// GetVideoMetadata retrieves full metadata about a video file using ffprobe's
// JSON writer.
func (p *Processor) GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, types.NewError(types.ErrorKindInputMissing, "info", inputPath,
			errors.Wrap(err, "input video file not found"))
	}

	bin, err := lookPath("info", p.tools.FFprobe)
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	cmd := exec.Command(bin,
		"-v", "error",
		"-of", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = p.stderr
	if err := cmd.Run(); err != nil {
		return nil, classifyExecError("info", inputPath, p.tools.FFprobe, err)
	}

	metadata, err := parseMetadata(stdout.Bytes())
	if err != nil {
		return nil, types.NewError(types.ErrorKindProbeOutput, "info", inputPath, err)
	}
	return metadata, nil
}

func parseMetadata(data []byte) (*VideoMetadata, error) {
	var probe probeJSON
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to parse ffprobe JSON")
	}

	if len(probe.Streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	metadata := &VideoMetadata{
		FormatName: probe.Format.FormatName,
		Size:       parseInt(probe.Format.Size),
	}

	videoIndex := -1
	for i, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if videoIndex < 0 {
				videoIndex = i
			}
		case "audio":
			metadata.HasAudio = true
		}
	}
	if videoIndex < 0 {
		return nil, errors.New("no video stream found")
	}
	video := probe.Streams[videoIndex]

	// First try video stream duration
	duration := parseFloat(video.Duration)

	// If stream duration is not available, try format duration
	if duration == 0 {
		duration = parseFloat(probe.Format.Duration)
	}

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 {
		frames := parseFloat(video.NbFrames)
		if rate := parseFrameRate(video.RFrameRate); frames > 0 && rate > 0 {
			duration = frames / rate
		}
	}

	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	metadata.Duration = duration
	metadata.Width = video.Width
	metadata.Height = video.Height
	metadata.Codec = video.CodecName

	// Format bitrate is usually more accurate than the stream's
	metadata.BitRate = parseInt(probe.Format.BitRate)
	if metadata.BitRate == 0 {
		metadata.BitRate = parseInt(video.BitRate)
	}
	if metadata.BitRate == 0 && metadata.Size > 0 {
		metadata.BitRate = int64(float64(metadata.Size*8) / duration)
	}

	return metadata, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseFrameRate(s string) float64 {
	nums := strings.Split(s, "/")
	if len(nums) != 2 {
		return parseFloat(s)
	}
	num := parseFloat(nums[0])
	den := parseFloat(nums[1])
	if den == 0 {
		return 0
	}
	return num / den
}

package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressOptions(t *testing.T, input string, ffmpegBin, ffprobeBin string) *config.CompressOptions {
	t.Helper()
	return &config.CompressOptions{
		InputPath:        input,
		TargetSizeMB:     10,
		AudioBitrateKbps: 96,
		Tools:            config.Tools{FFmpeg: ffmpegBin, FFprobe: ffprobeBin},
	}
}

func TestCompressor_Process(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	input := inputFile(t, "holiday.mp4")
	opts := compressOptions(t, input,
		fakeFFmpeg(t, argsFile, 1024),
		fakeFFprobe(t, 1920, 1080, 60))

	logger, logs := bufferedLogger()
	result, err := NewCompressor(opts, logger).Process()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(input), "holiday_compressed.mp4"), result.OutputPath)
	assert.Equal(t, int64(1024*1024), result.OutputSize)
	assert.Equal(t, 1.0, result.OutputSizeMB())
	assert.Equal(t, int64(1302), result.Plan.RoundedVideoKbps())

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-b:v 1302k")
	assert.Contains(t, string(args), "-b:a 96k")
	assert.Contains(t, string(args), "-vf scale=1280:720")
	assert.Contains(t, string(args), "-preset medium")
	assert.Contains(t, string(args), "-c:v libx264")

	assert.Contains(t, logs.String(), "executing command")
	assert.Contains(t, logs.String(), "applying resolution scale")
}

func TestCompressor_Process_SmallSourceIsNotScaled(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	opts := compressOptions(t, inputFile(t, "tiny.mp4"),
		fakeFFmpeg(t, argsFile, 16),
		fakeFFprobe(t, 426, 240, 30))

	_, err := NewCompressor(opts, nil).Process()
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.NotContains(t, string(args), "-vf")
}

func TestCompressor_Process_TargetExceeded(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	opts := compressOptions(t, inputFile(t, "long.mp4"),
		fakeFFmpeg(t, argsFile, 2048),
		fakeFFprobe(t, 1280, 720, 3600))
	opts.TargetSizeMB = 1
	opts.AudioBitrateKbps = 320

	logger, logs := bufferedLogger()
	result, err := NewCompressor(opts, logger).Process()
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindTargetExceeded, types.KindOf(err))
	require.NotNil(t, result)
	assert.True(t, result.Plan.Floored)
	assert.Equal(t, 2.0, result.OutputSizeMB())
	assert.Contains(t, logs.String(), "too low")

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-b:v 1000k")
}

func TestCompressor_Process_Failures(t *testing.T) {
	t.Run("missing input stops before encoding", func(t *testing.T) {
		argsFile := filepath.Join(t.TempDir(), "args")
		opts := compressOptions(t, filepath.Join(t.TempDir(), "absent.mp4"),
			fakeFFmpeg(t, argsFile, 1),
			fakeFFprobe(t, 1920, 1080, 60))

		_, err := NewCompressor(opts, nil).Process()
		assert.Equal(t, types.ErrorKindInputMissing, types.KindOf(err))
		assert.NoFileExists(t, argsFile)
	})

	t.Run("bad probe output", func(t *testing.T) {
		opts := compressOptions(t, inputFile(t, "a.mp4"),
			fakeFFmpeg(t, filepath.Join(t.TempDir(), "args"), 1),
			writeTool(t, "ffprobe", `printf '1920\n1080\nN/A\n'`))

		_, err := NewCompressor(opts, nil).Process()
		assert.Equal(t, types.ErrorKindProbeOutput, types.KindOf(err))
	})

	t.Run("ffmpeg exits non-zero", func(t *testing.T) {
		opts := compressOptions(t, inputFile(t, "a.mp4"),
			writeTool(t, "ffmpeg", "exit 1"),
			fakeFFprobe(t, 1920, 1080, 60))

		_, err := NewCompressor(opts, nil).Process()
		assert.Equal(t, types.ErrorKindToolFailed, types.KindOf(err))
	})

	t.Run("ffmpeg writes nothing", func(t *testing.T) {
		opts := compressOptions(t, inputFile(t, "a.mp4"),
			writeTool(t, "ffmpeg", "exit 0"),
			fakeFFprobe(t, 1920, 1080, 60))

		_, err := NewCompressor(opts, nil).Process()
		assert.Equal(t, types.ErrorKindToolFailed, types.KindOf(err))
		assert.Contains(t, err.Error(), "failed to create output file")
	})

	t.Run("ffmpeg missing", func(t *testing.T) {
		opts := compressOptions(t, inputFile(t, "a.mp4"),
			"video-toolkit-no-such-ffmpeg",
			fakeFFprobe(t, 1920, 1080, 60))

		_, err := NewCompressor(opts, nil).Process()
		assert.Equal(t, types.ErrorKindToolMissing, types.KindOf(err))
	})
}

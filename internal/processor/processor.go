package processor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/ZacxDev/video-toolkit/internal/planner"
	"github.com/ZacxDev/video-toolkit/internal/platform"
	"github.com/hashicorp/go-hclog"
)

// Compressor handles re-encoding a video toward a target size
type Compressor struct {
	opts    *config.CompressOptions
	ffmpeg  *ffmpeg.Processor
	planner *planner.Planner
	logger  hclog.Logger
}

// NewCompressor creates a new video compressor
func NewCompressor(opts *config.CompressOptions, logger hclog.Logger) *Compressor {
	logger = named(logger, "compress")
	opts.ApplyDefaults()
	return &Compressor{
		opts:    opts,
		ffmpeg:  ffmpeg.NewProcessor(opts.Tools, logger),
		planner: planner.New(logger),
		logger:  logger,
	}
}

// Trimmer handles cutting a video by stream copy
type Trimmer struct {
	opts   *config.TrimOptions
	ffmpeg *ffmpeg.Processor
	logger hclog.Logger
}

// NewTrimmer creates a new video trimmer
func NewTrimmer(opts *config.TrimOptions, logger hclog.Logger) *Trimmer {
	logger = named(logger, "trim")
	return &Trimmer{
		opts:   opts,
		ffmpeg: ffmpeg.NewProcessor(opts.Tools, logger),
		logger: logger,
	}
}

// AudioExtractor handles copying the audio track out of a video
type AudioExtractor struct {
	opts   *config.ExtractAudioOptions
	ffmpeg *ffmpeg.Processor
	logger hclog.Logger
}

// NewAudioExtractor creates a new audio extractor
func NewAudioExtractor(opts *config.ExtractAudioOptions, logger hclog.Logger) *AudioExtractor {
	logger = named(logger, "extract-audio")
	return &AudioExtractor{
		opts:   opts,
		ffmpeg: ffmpeg.NewProcessor(opts.Tools, logger),
		logger: logger,
	}
}

// Inspector reports metadata and the compression plan for a video
type Inspector struct {
	opts    *config.InfoOptions
	ffmpeg  *ffmpeg.Processor
	planner *planner.Planner
	logger  hclog.Logger
}

// NewInspector creates a new video inspector
func NewInspector(opts *config.InfoOptions, logger hclog.Logger) *Inspector {
	logger = named(logger, "info")
	if opts.TargetSizeMB == 0 {
		opts.TargetSizeMB = config.DefaultTargetSizeMB
	}
	return &Inspector{
		opts:    opts,
		ffmpeg:  ffmpeg.NewProcessor(opts.Tools, logger),
		planner: planner.New(logger),
		logger:  logger,
	}
}

// Result describes a file written by a stream-copy operation
type Result struct {
	OutputPath string
	OutputSize int64 // zero when the output could not be stat'ed
}

// GetSupportedPlatforms returns a list of supported platforms
func GetSupportedPlatforms() []string {
	return platform.GetSupportedPlatforms()
}

func named(logger hclog.Logger, name string) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger.Named(name)
}

// OutputPath inserts suffix between the base name and the extension of path.
func OutputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		// dot-files such as ".clip" have no extension
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// warnIfMissing reports a missing input without stopping; the external tool
// produces the actual failure.
func warnIfMissing(logger hclog.Logger, path string) bool {
	if _, err := os.Stat(path); err != nil {
		logger.Warn("input file not found", "path", path)
		return false
	}
	return true
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

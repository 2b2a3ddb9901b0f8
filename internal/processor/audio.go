package processor

import (
	"os"
	"path/filepath"

	"github.com/ZacxDev/video-toolkit/internal/config"
	"github.com/ZacxDev/video-toolkit/internal/ffmpeg"
	"github.com/dhowden/tag"
	"github.com/pkg/errors"
)

// AudioTags summarizes the metadata found in an extracted audio file
type AudioTags struct {
	Format   string
	FileType string
	Title    string
	Artist   string
	Album    string
}

// AudioResult describes a finished audio extraction
type AudioResult struct {
	Result
	Tags *AudioTags // nil when the container carries no readable tags
}

// Process copies the audio track into <base>_audio<ext>.
func (a *AudioExtractor) Process() (*AudioResult, error) {
	outputPath := OutputPath(a.opts.InputPath, config.AudioSuffix)
	if warnIfMissing(a.logger, a.opts.InputPath) {
		checkFreeSpace(a.logger, filepath.Dir(outputPath), uint64(fileSize(a.opts.InputPath)))
	}

	stream := ffmpeg.ExtractAudioStream(a.opts.InputPath, outputPath)
	if err := a.ffmpeg.Run("extract-audio", a.opts.InputPath, stream); err != nil {
		return nil, errors.Wrap(err, "error extracting audio")
	}
	a.logger.Info("audio successfully extracted", "output", outputPath)

	result := &AudioResult{
		Result: Result{
			OutputPath: outputPath,
			OutputSize: fileSize(outputPath),
		},
	}

	tags, err := readAudioTags(outputPath)
	switch {
	case err == nil:
		result.Tags = tags
		a.logger.Info("audio tags",
			"format", tags.Format,
			"type", tags.FileType,
			"title", tags.Title,
			"artist", tags.Artist)
	case errors.Is(err, tag.ErrNoTagsFound):
		a.logger.Debug("no tags in extracted audio", "output", outputPath)
	default:
		a.logger.Debug("could not read audio tags", "output", outputPath, "error", err)
	}

	return result, nil
}

func readAudioTags(path string) (*AudioTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return &AudioTags{
		Format:   string(m.Format()),
		FileType: string(m.FileType()),
		Title:    m.Title(),
		Artist:   m.Artist(),
		Album:    m.Album(),
	}, nil
}

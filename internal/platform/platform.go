package platform

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Platform defines a named compression target
type Platform interface {
	// GetName returns the platform name
	GetName() string

	// GetMaxFileSize returns the upload size limit in bytes, used as the compression target
	GetMaxFileSize() int64

	// GetVideoCodec returns the preferred video codec
	GetVideoCodec() string

	// GetAudioCodec returns the preferred audio codec
	GetAudioCodec() string

	// GetAudioBitrate returns the recommended audio bitrate in kbps
	GetAudioBitrate() float64
}

var platforms = make(map[string]Platform)

// Register adds a platform to the registry
func Register(p Platform) {
	platforms[p.GetName()] = p
}

// Get returns a platform by name
func Get(name string) (Platform, error) {
	p, ok := platforms[name]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", name)
	}
	return p, nil
}

// GetSupportedPlatforms returns the registered platform names in sorted order
func GetSupportedPlatforms() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MaxFileSizeMB converts the platform limit to MB (1024*1024 bytes)
func MaxFileSizeMB(p Platform) float64 {
	return float64(p.GetMaxFileSize()) / 1024 / 1024
}

package platform

type Generic struct{}

func init() {
	Register(&Generic{})
}

func (p *Generic) GetName() string {
	return "generic"
}

func (p *Generic) GetMaxFileSize() int64 {
	return 10 * 1024 * 1024 // 10MB
}

func (p *Generic) GetVideoCodec() string {
	return "libx264" // H.264 for better compatibility
}

func (p *Generic) GetAudioCodec() string {
	return "aac"
}

func (p *Generic) GetAudioBitrate() float64 {
	return 96
}

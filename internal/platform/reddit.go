package platform

type Reddit struct{}

func init() {
	Register(&Reddit{})
}

func (p *Reddit) GetName() string {
	return "reddit"
}

func (p *Reddit) GetMaxFileSize() int64 {
	return 1024 * 1024 * 1024 // 1GB
}

func (p *Reddit) GetVideoCodec() string {
	return "libx264"
}

func (p *Reddit) GetAudioCodec() string {
	return "aac"
}

func (p *Reddit) GetAudioBitrate() float64 {
	return 192
}

package platform

type XTwitter struct{}

func init() {
	Register(&XTwitter{})
}

func (p *XTwitter) GetName() string {
	return "x-twitter"
}

func (p *XTwitter) GetMaxFileSize() int64 {
	return 512 * 1024 * 1024 // 512MB
}

func (p *XTwitter) GetVideoCodec() string {
	return "libx264"
}

func (p *XTwitter) GetAudioCodec() string {
	return "aac"
}

func (p *XTwitter) GetAudioBitrate() float64 {
	return 128
}

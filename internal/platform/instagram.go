package platform

type InstagramReel struct{}

func init() {
	Register(&InstagramReel{})
}

func (p *InstagramReel) GetName() string {
	return "instagram-reel"
}

func (p *InstagramReel) GetMaxFileSize() int64 {
	return 250 * 1024 * 1024 // 250MB
}

func (p *InstagramReel) GetVideoCodec() string {
	return "libx264" // H.264 for better compatibility
}

func (p *InstagramReel) GetAudioCodec() string {
	return "aac"
}

func (p *InstagramReel) GetAudioBitrate() float64 {
	return 128
}

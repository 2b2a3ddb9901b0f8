package platform

type TikTok struct{}

func init() {
	Register(&TikTok{})
}

func (p *TikTok) GetName() string {
	return "tiktok"
}

func (p *TikTok) GetMaxFileSize() int64 {
	return 287 * 1024 * 1024 // 287MB
}

func (p *TikTok) GetVideoCodec() string {
	return "libx264" // H.264 for better compatibility
}

func (p *TikTok) GetAudioCodec() string {
	return "aac"
}

func (p *TikTok) GetAudioBitrate() float64 {
	return 128
}

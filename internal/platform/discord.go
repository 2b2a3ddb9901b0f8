package platform

type Discord struct{}

func init() {
	Register(&Discord{})
}

func (p *Discord) GetName() string {
	return "discord"
}

func (p *Discord) GetMaxFileSize() int64 {
	return 10 * 1024 * 1024 // 10MB without Nitro
}

func (p *Discord) GetVideoCodec() string {
	return "libx264"
}

func (p *Discord) GetAudioCodec() string {
	return "aac"
}

func (p *Discord) GetAudioBitrate() float64 {
	return 128
}

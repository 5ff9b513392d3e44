package audio

// Provider is the pull interface the audio output transport consumes.
type Provider interface {
	// GetSamples retrieves mixed samples for playback.
	GetSamples(count int) []int16
}

var _ Provider = (*APU)(nil)

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Player streams mixed samples from a Provider to the host audio device.
// The oto context runs its own playback goroutine that pulls through Read;
// the Provider's sample buffer is the only state shared with the emulation
// thread.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	source Provider
}

// NewPlayer opens the host audio device at the engine's sample rate.
func NewPlayer(source Provider) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio: opening output context: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx, source: source}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read fills p with little-endian 16-bit samples pulled from the source.
// Called by oto's playback goroutine.
func (p *Player) Read(buf []byte) (int, error) {
	count := len(buf) / 2
	samples := p.source.GetSamples(count)
	for i, s := range samples {
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}
	return count * 2, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.player.Play()
}

// Close stops playback and releases the device.
func (p *Player) Close() error {
	return p.player.Close()
}

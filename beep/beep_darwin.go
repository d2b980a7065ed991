//go:build darwin

package beep

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"promptline/log"
)

// clip is one pending playback. The device callback advances pos.
type clip struct {
	data []byte
	pos  atomic.Uint32
}

// player keeps one playback device open and swaps the clip it reads from.
type player struct {
	mu    sync.Mutex
	ctx   *malgo.AllocatedContext
	dev   *malgo.Device
	cur   atomic.Pointer[clip]
	sound map[Sound][]byte
}

var (
	out      player
	initOnce sync.Once
)

func Init() { initOnce.Do(out.open) }

func play(s Sound) {
	initOnce.Do(out.open)
	go out.start(s)
}

func (p *player) open() {
	p.sound = make(map[Sound][]byte, len(tones))
	for s := range tones {
		p.sound[s] = le16(render(s, 0))
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		log.Warnf("beep: malgo context: %v", err)
		return
	}
	p.ctx = ctx
	if err := p.newDevice(); err != nil {
		log.Warnf("beep: malgo playback device: %v", err)
		ctx.Uninit()
		p.ctx = nil
	}
}

func (p *player) newDevice() error {
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = 1
	cfg.SampleRate = sampleRate

	dev, err := malgo.InitDevice(p.ctx.Context, cfg, malgo.DeviceCallbacks{Data: p.fill})
	if err != nil {
		return err
	}
	p.dev = dev
	return nil
}

// fill is the device data callback: copy from the current clip, then zero
// whatever is left of the buffer.
func (p *player) fill(output, _ []byte, frames uint32) {
	want := int(frames) * 2
	n := 0
	if c := p.cur.Load(); c != nil {
		pos := int(c.pos.Load())
		n = copy(output[:want], c.data[pos:])
		c.pos.Store(uint32(pos + n))
		if pos+n >= len(c.data) {
			p.cur.CompareAndSwap(c, nil)
		}
	}
	clear(output[n:want])
}

func (p *player) start(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx == nil || p.dev == nil {
		return
	}
	data := p.sound[s]
	if len(data) == 0 {
		return
	}

	p.dev.Stop()
	p.cur.Store(&clip{data: data})
	if err := p.dev.Start(); err == nil {
		return
	}
	// The device goes stale across sleep/wake; rebuild it once.
	p.dev.Uninit()
	p.dev = nil
	if err := p.newDevice(); err != nil {
		log.Warnf("beep %s: reopen device: %v", s, err)
		p.cur.Store(nil)
		return
	}
	if err := p.dev.Start(); err != nil {
		log.Warnf("beep %s: start device: %v", s, err)
		p.cur.Store(nil)
	}
}

// le16 packs samples as little-endian S16 frames.
func le16(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

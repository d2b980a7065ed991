//go:build linux

package beep

import (
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"

	"promptline/log"
)

// PulseAudio drops the end of very short streams, so every clip is padded.
const minClip = 0.2

var (
	clips     map[Sound][]int16
	clipsOnce sync.Once
)

func loadClips() {
	clips = make(map[Sound][]int16, len(tones))
	for s := range tones {
		clips[s] = stereo(render(s, minClip))
	}
}

// stereo duplicates each sample into an L/R pair.
func stereo(mono []int16) []int16 {
	out := make([]int16, len(mono)*2)
	for i, s := range mono {
		out[i*2], out[i*2+1] = s, s
	}
	return out
}

func Init() { clipsOnce.Do(loadClips) }

func play(s Sound) {
	clipsOnce.Do(loadClips)
	go stream(s, clips[s])
}

// stream opens a fresh client per clip and blocks until it drains.
func stream(s Sound, samples []int16) {
	if len(samples) == 0 {
		return
	}
	c, err := pulse.NewClient(pulse.ClientApplicationName("promptline"))
	if err != nil {
		log.Warnf("beep %s: pulse client: %v", s, err)
		return
	}
	defer c.Close()

	rest := samples
	src := pulse.Int16Reader(func(buf []int16) (int, error) {
		if len(rest) == 0 {
			return 0, pulse.EndOfData
		}
		n := copy(buf, rest)
		rest = rest[n:]
		return n, nil
	})
	full := uint32(proto.VolumeNorm)
	pb, err := c.NewPlayback(src,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{full, full}
		}),
	)
	if err != nil {
		log.Warnf("beep %s: pulse playback: %v", s, err)
		return
	}
	defer pb.Close()
	pb.Start()
	pb.Drain()
	pb.Stop()
}

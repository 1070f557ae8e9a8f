// Package audio plays the per-band chime when a banner reaches the surface.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Player decodes and plays chime files. Decoded sounds are cached so a busy
// scheduler does not re-read the file for every banner.
type Player struct {
	logger *slog.Logger

	mu          sync.Mutex
	volume      float64
	initialized bool
	sampleRate  beep.SampleRate

	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer
}

// NewPlayer creates a player with full volume.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets playback volume, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Min(math.Max(volume, 0), 1)
}

// Play decodes (or fetches from cache) and plays a chime file.
// WAV, OGG and MP3 are supported.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}

	p.cacheMu.RLock()
	buffer, ok := p.cache[path]
	p.cacheMu.RUnlock()

	if !ok {
		var err error
		buffer, err = p.load(path)
		if err != nil {
			return err
		}
		p.cacheMu.Lock()
		p.cache[path] = buffer
		p.cacheMu.Unlock()
	}

	return p.playBuffer(buffer)
}

// Preload decodes a chime into the cache without playing it.
func (p *Player) Preload(path string) error {
	if path == "" {
		return nil
	}

	p.cacheMu.RLock()
	_, ok := p.cache[path]
	p.cacheMu.RUnlock()
	if ok {
		return nil
	}

	buffer, err := p.load(path)
	if err != nil {
		return err
	}

	p.cacheMu.Lock()
	p.cache[path] = buffer
	p.cacheMu.Unlock()

	p.logger.Debug("preloaded chime", "path", path)
	return nil
}

// Invalidate drops a cached chime so the next Play re-reads the file.
func (p *Player) Invalidate(path string) {
	p.cacheMu.Lock()
	delete(p.cache, path)
	p.cacheMu.Unlock()
}

// Close releases the speaker and clears the cache.
func (p *Player) Close() {
	p.mu.Lock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.mu.Unlock()

	p.cacheMu.Lock()
	p.cache = make(map[string]*beep.Buffer)
	p.cacheMu.Unlock()
}

func (p *Player) load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chime file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode chime: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureSpeaker(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// ensureSpeaker initializes the speaker on first use. The sample rate of the
// first decoded chime wins; later chimes are resampled to it.
func (p *Player) ensureSpeaker(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

func (p *Player) playBuffer(buffer *beep.Buffer) error {
	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToDecibels(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// volumeToDecibels converts linear volume to dB (0.5 = -6dB, 0.25 = -12dB).
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -100
	}
	return 20 * math.Log10(volume)
}

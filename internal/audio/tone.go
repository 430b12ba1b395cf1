package audio

import (
	"fmt"
	"io"
	"math"
)

// ToneStream is an in-memory 16-bit little-endian stereo PCM stream
// holding a synthesized frequency sweep. It satisfies io.ReadSeeker and
// can be handed directly to Ebitengine's audio.Context.NewPlayer.
type ToneStream struct {
	data       []byte // PCM data (16-bit signed, interleaved L/R)
	sampleRate int64  // Sample rate in Hz
	offset     int64  // Current read position
}

// ToneSpec describes a synthesized sweep.
type ToneSpec struct {
	StartHz  float64 // Frequency at t=0
	EndHz    float64 // Frequency at the end of the tone
	Duration float64 // Length in seconds
	Volume   float64 // Peak amplitude 0.0 ~ 1.0
}

const (
	bytesPerFrame = 4    // 2 channels * 16-bit
	attackSeconds = 0.01 // Linear fade-in to avoid clicks
)

// GenerateTone synthesizes a sine sweep from spec.StartHz to spec.EndHz
// with a short attack and a linear release.
//
// Parameters:
//   - sampleRate: Output sample rate in Hz (must match the audio context)
//   - spec: Sweep parameters
//
// Returns:
//   - *ToneStream: PCM stream ready for playback
//   - error: Error if the parameters are out of range
func GenerateTone(sampleRate int, spec ToneSpec) (*ToneStream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if spec.Duration <= 0 {
		return nil, fmt.Errorf("invalid tone duration: %.3f", spec.Duration)
	}
	if spec.StartHz <= 0 || spec.EndHz <= 0 {
		return nil, fmt.Errorf("invalid tone frequency: %.1f -> %.1f", spec.StartHz, spec.EndHz)
	}

	volume := math.Max(0, math.Min(1, spec.Volume))
	frames := int(float64(sampleRate) * spec.Duration)
	data := make([]byte, frames*bytesPerFrame)

	phase := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		freq := spec.StartHz + (spec.EndHz-spec.StartHz)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		envelope := 1 - t
		if elapsed := float64(i) / float64(sampleRate); elapsed < attackSeconds {
			envelope *= elapsed / attackSeconds
		}

		sample := int16(math.Sin(phase) * envelope * volume * math.MaxInt16)

		// Write the same sample to both channels (little-endian)
		base := i * bytesPerFrame
		data[base] = byte(sample)
		data[base+1] = byte(sample >> 8)
		data[base+2] = byte(sample)
		data[base+3] = byte(sample >> 8)
	}

	return &ToneStream{
		data:       data,
		sampleRate: int64(sampleRate),
	}, nil
}

// Read reads PCM data into p.
// Implements io.Reader interface.
func (s *ToneStream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (s *ToneStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (s *ToneStream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate returns the sample rate of the stream in Hz.
func (s *ToneStream) SampleRate() int64 {
	return s.sampleRate
}

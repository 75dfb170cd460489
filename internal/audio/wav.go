package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteWAV encodes mono samples in [-1,1] as 16-bit PCM WAV. Samples outside
// the range are clipped.
func WriteWAV(w io.Writer, sampleRate int, samples []float32) error {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataLen := uint32(len(samples) * 2)
	header := struct {
		RIFF          [4]byte
		Size          uint32
		WAVE          [4]byte
		Fmt           [4]byte
		FmtSize       uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Data          [4]byte
		DataSize      uint32
	}{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		Size:          36 + dataLen,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        1,
		Channels:      channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bitsPerSample / 8),
		BlockAlign:    channels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataLen,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		pcm[i] = int16(math.Round(v * math.MaxInt16))
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

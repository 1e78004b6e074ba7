package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	// SampleRate is the capture rate for the default microphone stream.
	SampleRate      = 44100
	Channels        = 1
	BitsPerSample   = 16
	FramesPerBuffer = 1024
)

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// EncodeWAV wraps raw int16 mono samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := uint32(len(samples) * 2)
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + 36,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   Channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * Channels * BitsPerSample / 8,
		BlockAlign:    Channels * BitsPerSample / 8,
		BitsPerSample: BitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, header)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// Amplitude returns the mean absolute amplitude of one frame.
func Amplitude(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var total float64
	for _, sample := range frame {
		total += math.Abs(float64(sample))
	}
	return total / float64(len(frame))
}

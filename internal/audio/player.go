package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gordonklaus/portaudio"
	"github.com/youpy/go-wav"
)

// FilePlayer plays WAV files on the default output device, blocking until the
// clip finishes. One clip plays at a time; the conversation loop never starts
// a new reply before the previous one has drained.
type FilePlayer struct{}

func NewFilePlayer() *FilePlayer { return &FilePlayer{} }

func (FilePlayer) Play(path string) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	reader := wav.NewReader(file)
	format, err := reader.Format()
	if err != nil {
		return fmt.Errorf("failed to read wav format: %w", err)
	}

	out := make([]int16, FramesPerBuffer*int(format.NumChannels))
	stream, err := portaudio.OpenDefaultStream(0, int(format.NumChannels), float64(format.SampleRate), FramesPerBuffer, out)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for {
		samples, rerr := reader.ReadSamples(uint32(FramesPerBuffer))
		if rerr != nil && rerr != io.EOF {
			return fmt.Errorf("failed to read wav samples: %w", rerr)
		}
		if len(samples) == 0 {
			return nil
		}
		i := 0
		for _, s := range samples {
			for c := 0; c < int(format.NumChannels) && i < len(out); c++ {
				out[i] = int16(s.Values[c])
				i++
			}
		}
		// Pad the final partial frame with silence.
		for ; i < len(out); i++ {
			out[i] = 0
		}
		if werr := stream.Write(); werr != nil {
			return fmt.Errorf("failed to write output frame: %w", werr)
		}
		if rerr == io.EOF {
			return nil
		}
	}
}

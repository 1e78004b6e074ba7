package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Microphone captures int16 mono frames from the default input device using
// PortAudio's blocking read API. It is not safe for concurrent use; the
// recognition worker is its only caller.
type Microphone struct {
	buf    []int16
	stream *portaudio.Stream
}

func NewMicrophone() *Microphone {
	return &Microphone{buf: make([]int16, FramesPerBuffer)}
}

// Start initializes PortAudio and opens the default input stream.
func (m *Microphone) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(Channels, 0, float64(SampleRate), FramesPerBuffer, m.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("failed to open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("failed to start input stream: %w", err)
	}
	m.stream = stream
	return nil
}

// Read blocks until one frame of samples is available and returns a copy.
func (m *Microphone) Read() ([]int16, error) {
	if m.stream == nil {
		return nil, fmt.Errorf("microphone not started")
	}
	if err := m.stream.Read(); err != nil {
		return nil, fmt.Errorf("failed to read input frame: %w", err)
	}
	out := make([]int16, len(m.buf))
	copy(out, m.buf)
	return out, nil
}

// Stop closes the stream and releases PortAudio.
func (m *Microphone) Stop() error {
	if m.stream == nil {
		return nil
	}
	err := m.stream.Stop()
	_ = m.stream.Close()
	m.stream = nil
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}

// ListInputDevices enumerates audio devices that can capture input.
func ListInputDevices() ([]portaudio.DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	inputDevices := make([]portaudio.DeviceInfo, 0)
	for _, device := range devices {
		if device.MaxInputChannels > 0 {
			inputDevices = append(inputDevices, *device)
		}
	}
	return inputDevices, nil
}

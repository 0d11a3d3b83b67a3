package audioio

import (
	"errors"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

// ErrNoDevice is returned by NewDevice when malgo cannot find or open a
// capture device.
var ErrNoDevice = errors.New("audioio: no capture device available")

// ErrUnsupportedFormat is returned when the device accepts neither
// signed-16-bit PCM nor float32 capture.
var ErrUnsupportedFormat = errors.New("audioio: unsupported capture sample format")

// Device wraps a malgo capture stream feeding a Buffer: an opaque handle to
// the OS input stream plus the sample rate it was opened at; dropping it
// (Stop) ends capture.
//
// This Device uses malgo.Capture instead of malgo.Duplex since there is no
// playback stream in a dictation pipeline.
type Device struct {
	ctx        *malgo.AllocatedContext
	device     *malgo.Device
	buffer     *Buffer
	sampleRate int
	channels   int
}

// NewDevice opens the platform's default input device wired to buf;
// streaming begins at Start. The capture callback down-mixes to mono and
// resamples to TargetSampleRate before appending.
func NewDevice(buf *Buffer) (*Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	const sampleRate = 44100
	const channels = 1

	d := &Device{ctx: ctx, buffer: buf, sampleRate: sampleRate, channels: channels}

	device, err := openCaptureDevice(ctx, buf, sampleRate, channels)
	if err != nil {
		ctx.Uninit()
		return nil, err
	}
	d.device = device

	return d, nil
}

// openCaptureDevice tries the two sample formats a captured frame can be
// converted from (signed-16-bit PCM, then float32), and reports
// ErrUnsupportedFormat if the device refuses both.
func openCaptureDevice(ctx *malgo.AllocatedContext, buf *Buffer, sampleRate, channels int) (*malgo.Device, error) {
	formats := []malgo.FormatType{malgo.FormatS16, malgo.FormatF32}

	var lastErr error
	for _, format := range formats {
		device, err := initCaptureDevice(ctx, buf, sampleRate, channels, format)
		if err == nil {
			return device, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, lastErr)
}

func initCaptureDevice(ctx *malgo.AllocatedContext, buf *Buffer, sampleRate, channels int, format malgo.FormatType) (*malgo.Device, error) {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = format
	deviceConfig.Capture.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(_, pInput []byte, frameCount uint32) {
		if len(pInput) == 0 {
			return
		}
		var f32 []float32
		if format == malgo.FormatF32 {
			f32 = bytesToFloat32(pInput)
		} else {
			f32 = PCM16ToFloat32(bytesToInt16(pInput))
		}
		mono := DownmixMono(f32, channels)
		resampled := Resample(mono, sampleRate, TargetSampleRate)
		buf.Append(resampled)
	}

	return malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
}

// Start begins streaming.
func (d *Device) Start() error {
	if err := d.device.Start(); err != nil {
		return fmt.Errorf("audioio: start capture: %w", err)
	}
	return nil
}

// SampleRate returns the rate capture is opened at (before resampling to
// TargetSampleRate). This is a fixed 44.1 kHz mono request; the hardware's
// own rate and channel count are not queried.
func (d *Device) SampleRate() int { return d.sampleRate }

// Stop ends capture and releases the device and context. Safe to call
// once; subsequent calls are no-ops.
func (d *Device) Stop() {
	if d.device != nil {
		d.device.Uninit()
		d.device = nil
	}
	if d.ctx != nil {
		d.ctx.Uninit()
		d.ctx = nil
	}
}

func bytesToInt16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(b[i*2]) | int16(b[i*2+1])<<8
	}
	return out
}

func bytesToFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		bits := uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}

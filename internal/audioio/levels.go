package audioio

import "math"

// samplesPerBar returns round(sampleRate * 0.033), the width in samples of
// one level-meter bar.
func samplesPerBar(sampleRate int) int {
	return int(math.Round(float64(sampleRate) * 0.033))
}

// Levels computes n RMS bars over the tail of buffer, at ~33ms per bar.
// Short tails are zero-padded at the front: a bar whose chunk index falls
// before the start of buffer is 0. Called at ~30 Hz by the Controller while
// recording.
func Levels(buffer []float32, sampleRate, n int) []float32 {
	out := make([]float32, n)
	if n <= 0 {
		return out
	}

	perBar := samplesPerBar(sampleRate)
	if perBar <= 0 {
		return out
	}

	windowLen := n * perBar
	start := len(buffer) - windowLen
	if start < 0 {
		start = 0
	}
	tail := buffer[start:]

	// Bars are right-aligned against the tail: the last bar always covers
	// the most recent perBar samples, earlier bars step backward from
	// there. Any bar whose chunk would start before the buffer began is
	// left at zero.
	missing := n - len(tail)/perBar
	if missing < 0 {
		missing = 0
	}

	for i := missing; i < n; i++ {
		chunkStart := len(tail) - (n-i)*perBar
		chunkEnd := chunkStart + perBar
		if chunkEnd > len(tail) {
			chunkEnd = len(tail)
		}
		if chunkStart >= chunkEnd {
			continue
		}
		out[i] = rms(tail[chunkStart:chunkEnd])
	}

	return out
}

func rms(chunk []float32) float32 {
	if len(chunk) == 0 {
		return 0
	}
	var sum float64
	for _, s := range chunk {
		sum += float64(s) * float64(s)
	}
	mean := sum / float64(len(chunk))
	return float32(math.Sqrt(mean))
}

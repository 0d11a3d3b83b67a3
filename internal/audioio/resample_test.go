package audioio

import "testing"

func TestResampleIdentityWhenRatesEqual(t *testing.T) {
	x := []float32{1, 2, 3, 4}
	got := Resample(x, 16000, 16000)
	if len(got) != len(x) {
		t.Fatalf("expected identity, got %v", got)
	}
	for i := range x {
		if got[i] != x[i] {
			t.Fatalf("expected identity at %d, got %v", i, got)
		}
	}
}

func TestResampleEmptyInput(t *testing.T) {
	got := Resample(nil, 44100, 16000)
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestResampleOutputLength(t *testing.T) {
	x := make([]float32, 4410)
	got := Resample(x, 44100, 16000)
	want := int(float64(len(x)) / (44100.0 / 16000.0))
	if len(got) != want {
		t.Fatalf("expected length %d, got %d", want, len(got))
	}
}

func TestDownmixMonoAverages(t *testing.T) {
	stereo := []float32{1, 1, -1, -1, 0, 2}
	got := DownmixMono(stereo, 2)
	want := []float32{1, -1, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v want %v", i, got, want)
		}
	}
}

func TestPCM16ToFloat32Range(t *testing.T) {
	got := PCM16ToFloat32([]int16{32767, -32768, 0})
	if got[1] != -1.0 {
		t.Fatalf("expected -1.0 at min int16, got %v", got[1])
	}
	if got[2] != 0 {
		t.Fatalf("expected 0, got %v", got[2])
	}
}

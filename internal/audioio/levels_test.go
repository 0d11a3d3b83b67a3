package audioio

import "testing"

func TestLevelsReturnsExactlyN(t *testing.T) {
	buf := make([]float32, 1000)
	got := Levels(buf, 16000, 48)
	if len(got) != 48 {
		t.Fatalf("expected 48 bars, got %d", len(got))
	}
}

func TestLevelsAllZeroForSilence(t *testing.T) {
	buf := make([]float32, 16000)
	got := Levels(buf, 16000, 48)
	for i, v := range got {
		if v != 0 {
			t.Fatalf("expected bar %d to be zero, got %v", i, v)
		}
	}
}

func TestLevelsPositiveForConstantNonZeroTail(t *testing.T) {
	perBar := samplesPerBar(16000)
	buf := make([]float32, 48*perBar)
	for i := range buf {
		buf[i] = 0.5
	}
	got := Levels(buf, 16000, 48)
	for i, v := range got {
		if v <= 0 {
			t.Fatalf("expected bar %d to be positive, got %v", i, v)
		}
	}
}

func TestLevelsShortTailPadsFront(t *testing.T) {
	perBar := samplesPerBar(16000)
	buf := make([]float32, 2*perBar)
	for i := range buf {
		buf[i] = 1.0
	}
	got := Levels(buf, 16000, 48)
	for i := 0; i < 46; i++ {
		if got[i] != 0 {
			t.Fatalf("expected leading bar %d to be zero-padded, got %v", i, got[i])
		}
	}
	if got[47] <= 0 {
		t.Fatalf("expected trailing bar to be non-zero, got %v", got[47])
	}
}

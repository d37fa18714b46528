package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/tubefetch/tubefetch/internal/model"
)

// fakeClock advances by a fixed step on every call.
type fakeClock struct {
	current time.Time
	step    time.Duration
}

func (c *fakeClock) now() time.Time {
	c.current = c.current.Add(c.step)
	return c.current
}

func newTestThrottle(cooldown, step time.Duration) *Throttle {
	t := NewThrottle(cooldown)
	clock := &fakeClock{current: time.Unix(1000, 0), step: step}
	t.now = clock.now
	return t
}

func sample(phase model.TransferPhase, downloaded, total int64) model.ProgressSample {
	return model.ProgressSample{Phase: phase, DownloadedBytes: downloaded, TotalBytes: total}
}

func TestThrottle_IdenticalTextEmitsOnce(t *testing.T) {
	th := newTestThrottle(500*time.Millisecond, 10*time.Millisecond)

	emissions := 0
	for i := 0; i < 20; i++ {
		if _, ok := th.Observe(sample(model.PhaseDownloading, 50, 100)); ok {
			emissions++
		}
	}

	if emissions != 1 {
		t.Errorf("identical samples emitted %d times, expected 1", emissions)
	}
}

func TestThrottle_IncreasingPercentAtCooldownEmitsEach(t *testing.T) {
	th := newTestThrottle(500*time.Millisecond, 500*time.Millisecond)

	for pct := int64(1); pct <= 10; pct++ {
		text, ok := th.Observe(sample(model.PhaseDownloading, pct, 100))
		if !ok {
			t.Fatalf("sample at %d%% was suppressed, expected emission", pct)
		}
		expected := fmt.Sprintf("%s %d%%", DownloadingText, pct)
		if text != expected {
			t.Errorf("text = %q, expected %q", text, expected)
		}
	}
}

func TestThrottle_ChangedTextWithinCooldownSuppressed(t *testing.T) {
	th := newTestThrottle(time.Second, 10*time.Millisecond)

	if _, ok := th.Observe(sample(model.PhaseDownloading, 1, 100)); !ok {
		t.Fatal("first sample was suppressed, expected emission")
	}
	// Different text, but the cooldown window has not elapsed.
	if text, ok := th.Observe(sample(model.PhaseDownloading, 2, 100)); ok {
		t.Errorf("emitted %q within cooldown, expected suppression", text)
	}
}

func TestThrottle_PhaseTextsSharedAcrossPhases(t *testing.T) {
	th := newTestThrottle(10*time.Millisecond, 50*time.Millisecond)

	if _, ok := th.Observe(sample(model.PhaseConverting, 0, 0)); !ok {
		t.Fatal("converting sample was suppressed, expected emission")
	}
	// Same derived text again, even after the cooldown: still suppressed.
	if _, ok := th.Observe(sample(model.PhaseConverting, 0, 0)); ok {
		t.Error("repeated converting text emitted, expected suppression")
	}

	text, ok := th.Observe(sample(model.PhaseUploading, 0, 0))
	if !ok {
		t.Fatal("uploading sample was suppressed, expected emission")
	}
	if text != UploadingText {
		t.Errorf("text = %q, expected %q", text, UploadingText)
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		sample   model.ProgressSample
		expected string
	}{
		{sample(model.PhaseDownloading, 25, 100), "📥 Скачивание... 25%"},
		{sample(model.PhaseDownloading, 0, 0), "📥 Скачивание... 0%"},
		{sample(model.PhaseConverting, 0, 0), ConvertingText},
		{sample(model.PhaseUploading, 0, 0), UploadingText},
		{model.ProgressSample{Phase: model.TransferPhase("bogus")}, ""},
	}

	for _, test := range tests {
		if got := StatusText(test.sample); got != test.expected {
			t.Errorf("StatusText(%v) = %q, expected %q", test.sample.Phase, got, test.expected)
		}
	}
}

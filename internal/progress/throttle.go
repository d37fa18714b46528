package progress

// Package progress rate-limits and de-duplicates the status texts derived
// from raw transfer progress samples.

import (
	"fmt"
	"time"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Status texts shown while a transfer runs.
const (
	DownloadingText = "📥 Скачивание..."
	ConvertingText  = "✅ Загрузка завершена, начинаем конвертацию...\n Конвертация может занять значительное время"
	UploadingText   = "🚀 Отправка..."
)

// StatusText derives the human-readable status line for a raw sample: a
// percentage line for the downloading phase, fixed messages for the
// conversion and upload phases.
func StatusText(s model.ProgressSample) string {
	switch s.Phase {
	case model.PhaseDownloading:
		return fmt.Sprintf("%s %d%%", DownloadingText, s.Percent())
	case model.PhaseConverting:
		return ConvertingText
	case model.PhaseUploading:
		return UploadingText
	}
	return ""
}

// Throttle suppresses status updates that repeat the last emitted text or
// arrive before the cooldown window has elapsed. One Throttle belongs to
// exactly one transfer and is only touched from the goroutine consuming that
// transfer's progress events. Download- and upload-phase samples share the
// same last-text/timestamp pair, so a text repeating across the phase
// boundary is suppressed as well.
type Throttle struct {
	cooldown time.Duration
	lastText string
	lastEmit time.Time
	now      func() time.Time
}

// NewThrottle creates a throttle with the given cooldown between emissions.
func NewThrottle(cooldown time.Duration) *Throttle {
	return &Throttle{cooldown: cooldown, now: time.Now}
}

// Observe processes one raw sample. It returns the derived status text and
// true when the caller should issue a chat edit: the text differs from the
// last emitted one and at least the cooldown has passed since the last
// emission.
func (t *Throttle) Observe(s model.ProgressSample) (string, bool) {
	text := StatusText(s)
	if text == "" {
		return "", false
	}
	if text == t.lastText {
		return "", false
	}
	now := t.now()
	if !t.lastEmit.IsZero() && now.Sub(t.lastEmit) < t.cooldown {
		return "", false
	}
	t.lastText = text
	t.lastEmit = now
	return text, true
}

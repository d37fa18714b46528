package transfer

// Package transfer owns the artifact lifecycle of a single download+upload
// pair: deterministic output naming, best-effort thumbnail fetch, and
// guaranteed cleanup of transient files.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/progress"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Artifact extensions
const (
	VideoExtension     = ".mp4"
	ThumbnailExtension = ".jpg"
)

// Job is the ephemeral context of one active transfer. It owns the output
// paths and the progress throttle for that transfer and is discarded when
// the transfer ends, regardless of outcome. A Job is never shared across
// transfers.
type Job struct {
	ID   string // correlation id for logs
	Kind model.SessionKind

	BasePath       string // shared prefix of every transient artifact
	OutputPath     string // final artifact handed to chat
	OutputTemplate string // engine output template
	ThumbnailPath  string // set after a successful fetch

	Throttle *progress.Throttle
}

// Manager creates and disposes transfer jobs inside the download directory.
type Manager struct {
	downloadDir      string
	editCooldown     time.Duration
	thumbnailTimeout time.Duration
	client           *http.Client
	log              *logrus.Logger
}

// NewManager creates a manager rooted at downloadDir, creating the directory
// when absent.
func NewManager(downloadDir string, editCooldown, thumbnailTimeout time.Duration, log *logrus.Logger) (*Manager, error) {
	if err := ensureDirectory(downloadDir); err != nil {
		return nil, fmt.Errorf("ensure download dir: %w", err)
	}
	return &Manager{
		downloadDir:      downloadDir,
		editCooldown:     editCooldown,
		thumbnailTimeout: thumbnailTimeout,
		client:           &http.Client{Timeout: thumbnailTimeout},
		log:              log,
	}, nil
}

// NewVideoJob composes the deterministic artifact paths for a video transfer
// at the given resolution height.
func (m *Manager) NewVideoJob(title string, height int) *Job {
	base := filepath.Join(m.downloadDir, fmt.Sprintf("%s_%dp", SanitizeTitle(title), height))
	return &Job{
		ID:             uuid.NewString(),
		Kind:           model.SessionKindVideo,
		BasePath:       base,
		OutputPath:     base + VideoExtension,
		OutputTemplate: base + VideoExtension,
		Throttle:       progress.NewThrottle(m.editCooldown),
	}
}

// NewAudioJob composes the deterministic artifact paths for an audio
// transfer with the given output codec. The engine decides the intermediate
// extension, so the template keeps it variable.
func (m *Manager) NewAudioJob(title, codec string) *Job {
	base := filepath.Join(m.downloadDir, SanitizeTitle(title))
	return &Job{
		ID:             uuid.NewString(),
		Kind:           model.SessionKindAudio,
		BasePath:       base,
		OutputPath:     base + "." + codec,
		OutputTemplate: base + ".%(ext)s",
		Throttle:       progress.NewThrottle(m.editCooldown),
	}
}

// FetchThumbnail downloads the thumbnail next to the job's artifacts. Any
// failure (timeout, non-success status, write error) degrades to "no
// thumbnail" and is never surfaced as an error.
func (m *Manager) FetchThumbnail(ctx context.Context, url string, job *Job) bool {
	if url == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		m.log.WithField("transfer", job.ID).WithError(err).Debug("thumbnail request build failed")
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		m.log.WithField("transfer", job.ID).WithError(err).Debug("thumbnail fetch failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		m.log.WithField("transfer", job.ID).WithField("status", resp.StatusCode).Debug("thumbnail fetch non-success status")
		return false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		m.log.WithField("transfer", job.ID).WithError(err).Debug("thumbnail read failed")
		return false
	}

	path := job.BasePath + ThumbnailExtension
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		m.log.WithField("transfer", job.ID).WithError(err).Debug("thumbnail write failed")
		return false
	}

	job.ThumbnailPath = path
	return true
}

// Cleanup removes every file sharing the job's base name. The glob requires
// the dot before the extension: an audio job's base is the bare title, and a
// same-title video job's artifacts (`<title>_<height>p.*`) must survive. It
// runs after the outbound reply attempt whether or not the reply succeeded.
func (m *Manager) Cleanup(job *Job) {
	matches, err := filepath.Glob(job.BasePath + ".*")
	if err != nil {
		m.log.WithField("transfer", job.ID).WithError(err).Warn("cleanup glob failed")
		return
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.log.WithField("transfer", job.ID).WithField("path", path).WithError(err).Warn("cleanup remove failed")
		}
	}
}

// SanitizeTitle derives a filesystem- and caption-safe title: letters,
// digits, space, dot, underscore and hyphen survive, everything else is
// dropped, and surrounding whitespace is trimmed.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ensureDirectory creates the directory if it doesn't exist.
func ensureDirectory(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

package model

// TransferPhase identifies which stage of a transfer a progress sample
// belongs to.
type TransferPhase string

const (
	// PhaseDownloading means the engine is fetching media bytes.
	PhaseDownloading TransferPhase = "Downloading"

	// PhaseConverting means the engine finished downloading and is running
	// the conversion/merge step.
	PhaseConverting TransferPhase = "Converting"

	// PhaseUploading means the converted file is being sent back to chat.
	PhaseUploading TransferPhase = "Uploading"
)

// ProgressSample is a raw progress measurement produced by the engine on a
// worker goroutine.
type ProgressSample struct {
	Phase           TransferPhase
	DownloadedBytes int64
	TotalBytes      int64
}

// Percent returns the download percentage, or 0 when the total is unknown.
func (s ProgressSample) Percent() int {
	if s.TotalBytes <= 0 {
		return 0
	}
	return int(s.DownloadedBytes * 100 / s.TotalBytes)
}

// ProgressEvent is the typed message handed from the download worker to the
// goroutine that owns chat edits for the transfer. Events for one transfer
// are applied in the order they were emitted.
type ProgressEvent struct {
	Phase   TransferPhase
	Percent int
	Text    string
}

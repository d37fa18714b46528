package download

// Package download implements the download coordinator built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It runs blocking extraction
// and download/conversion work on a bounded worker pool, classifies engine
// failures, and forwards raw progress samples to the caller.

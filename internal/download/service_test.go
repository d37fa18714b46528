package download

import (
	"errors"
	"testing"

	"github.com/lrstanley/go-ytdlp"

	"github.com/tubefetch/tubefetch/internal/model"
)

func TestClassifyExtractionError(t *testing.T) {
	tests := []struct {
		message  string
		expected model.ExtractionErrorKind
	}{
		{"ERROR: Sign in to confirm your age", model.ExtractionAgeRestricted},
		{"ERROR: This video is age-restricted", model.ExtractionAgeRestricted},
		{"ERROR: The uploader has not made this video available in your country", model.ExtractionRegionBlocked},
		{"ERROR: geo restriction applies", model.ExtractionRegionBlocked},
		{"ERROR: blocked on copyright grounds", model.ExtractionCopyrightBlocked},
		{"ERROR: something else entirely", model.ExtractionUnknown},
		{"", model.ExtractionUnknown},
	}

	for _, test := range tests {
		result := ClassifyExtractionError(errors.New(test.message))
		if result.Kind != test.expected {
			t.Errorf("ClassifyExtractionError(%q).Kind = %s, expected %s", test.message, result.Kind, test.expected)
		}
		if result.Message != test.message {
			t.Errorf("ClassifyExtractionError(%q) lost the original message: %q", test.message, result.Message)
		}
	}
}

func TestSampleFromUpdate(t *testing.T) {
	downloading := ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusDownloading,
		DownloadedBytes: 256,
		TotalBytes:      1024,
	}
	sample, ok := sampleFromUpdate(downloading)
	if !ok {
		t.Fatal("downloading update was dropped")
	}
	if sample.Phase != model.PhaseDownloading {
		t.Errorf("Phase = %s, expected Downloading", sample.Phase)
	}
	if sample.Percent() != 25 {
		t.Errorf("Percent() = %d, expected 25", sample.Percent())
	}

	finished := ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished}
	sample, ok = sampleFromUpdate(finished)
	if !ok {
		t.Fatal("finished update was dropped")
	}
	if sample.Phase != model.PhaseConverting {
		t.Errorf("Phase = %s, expected Converting", sample.Phase)
	}

	if _, ok := sampleFromUpdate(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusStarting}); ok {
		t.Error("starting update produced a sample, expected drop")
	}
}

func TestMetadataFromInfo(t *testing.T) {
	title := "Some Title"
	uploader := "Some Author"
	thumb := "https://img.example/abc.jpg"
	duration := 212.0
	h1080 := 1080.0
	h720 := 720.0
	id299 := "299"
	id136 := "136"
	id140 := "140"

	info := &ytdlp.ExtractedInfo{
		Title:     &title,
		Uploader:  &uploader,
		Thumbnail: &thumb,
		Duration:  &duration,
		Formats: []*ytdlp.ExtractedFormat{
			{FormatID: &id299, Height: &h1080},
			{FormatID: &id136, Height: &h720},
			{FormatID: &id140}, // audio-only, no height
			nil,
		},
	}

	md := metadataFromInfo(info)
	if md.Title != title {
		t.Errorf("Title = %q, expected %q", md.Title, title)
	}
	if md.Uploader != uploader {
		t.Errorf("Uploader = %q, expected %q", md.Uploader, uploader)
	}
	if md.Thumbnail != thumb {
		t.Errorf("Thumbnail = %q, expected %q", md.Thumbnail, thumb)
	}
	if md.Duration != 212 {
		t.Errorf("Duration = %d, expected 212", md.Duration)
	}
	if len(md.Formats) != 3 {
		t.Fatalf("Formats has %d entries, expected 3", len(md.Formats))
	}
	if md.Formats[0].Height != 1080 || md.Formats[2].Height != 0 {
		t.Errorf("format heights = %v, expected 1080 first and 0 last", md.Formats)
	}
}

func TestMetadataFromInfo_MissingUploader(t *testing.T) {
	title := "Some Title"
	md := metadataFromInfo(&ytdlp.ExtractedInfo{Title: &title})
	if md.Uploader != "Unknown" {
		t.Errorf("Uploader = %q, expected Unknown fallback", md.Uploader)
	}
}

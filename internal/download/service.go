package download

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Format selector templates handed to yt-dlp.
const (
	VideoFormatTemplate = "bestvideo[ext=mp4][height<=%d]+bestaudio[ext=m4a]/best[ext=mp4]"
	AudioFormatSelector = "bestaudio/best"
	VideoMergeContainer = "mp4"
	AudioQualityBest    = "0"
)

// ProgressInterval is how often the engine reports raw progress samples.
// Denser than any sane edit cooldown so the throttle, not the engine, decides
// the edit rate.
const ProgressInterval = 250 * time.Millisecond

// Service coordinates blocking engine work. A buffered channel bounds the
// number of concurrently running engine invocations.
type Service struct {
	cookiesFile string
	slots       chan struct{}
	log         *logrus.Logger
}

// NewService creates a coordinator allowing up to maxParallel concurrent
// engine runs. cookiesFile may be empty when the deployment needs no engine
// credentials.
func NewService(maxParallel int, cookiesFile string, log *logrus.Logger) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		cookiesFile: cookiesFile,
		slots:       make(chan struct{}, maxParallel),
		log:         log,
	}
}

// ExtractMetadata resolves a URL into a metadata snapshot without
// downloading anything. It blocks until a worker slot is free.
func (s *Service) ExtractMetadata(ctx context.Context, url string) (*model.Metadata, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	dl := s.newCommand().
		SkipDownload().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		classified := ClassifyExtractionError(err)
		s.log.WithField("url", url).WithField("kind", classified.Kind).Warn("metadata extraction failed")
		return nil, classified
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, &model.ExtractionError{Kind: model.ExtractionUnknown, Message: err.Error()}
	}
	if len(infos) == 0 {
		return nil, &model.ExtractionError{Kind: model.ExtractionUnknown, Message: "engine returned no metadata"}
	}

	return metadataFromInfo(infos[0]), nil
}

// Run executes a transfer to completion or failure, forwarding raw progress
// samples to req.OnProgress. It blocks until a worker slot is free.
func (s *Service) Run(ctx context.Context, req *Request) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	dl := s.newCommand().
		ForceOverwrites().
		Output(req.OutputTemplate)

	switch req.Kind {
	case model.SessionKindVideo:
		dl = dl.
			Format(fmt.Sprintf(VideoFormatTemplate, req.Height)).
			MergeOutputFormat(VideoMergeContainer)
	case model.SessionKindAudio:
		dl = dl.
			Format(AudioFormatSelector).
			ExtractAudio().
			AudioFormat(req.Codec).
			AudioQuality(AudioQualityBest)
	default:
		return fmt.Errorf("unknown transfer kind: %q", req.Kind)
	}

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		if req.OnProgress == nil {
			return
		}
		if sample, ok := sampleFromUpdate(update); ok {
			req.OnProgress(sample)
		}
	})

	if _, err := dl.Run(ctx, req.URL); err != nil {
		return &model.DownloadError{Err: err}
	}
	return nil
}

// acquire blocks until a worker slot is free or the context is done.
func (s *Service) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release frees a worker slot.
func (s *Service) release() {
	<-s.slots
}

// newCommand creates the base yt-dlp invocation shared by every operation.
func (s *Service) newCommand() *ytdlp.Command {
	dl := ytdlp.New().Quiet()
	if s.cookiesFile != "" {
		dl = dl.Cookies(s.cookiesFile)
	}
	return dl
}

// sampleFromUpdate converts an engine progress update into a raw sample.
// Updates that carry no user-visible phase are dropped.
func sampleFromUpdate(update ytdlp.ProgressUpdate) (model.ProgressSample, bool) {
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		return model.ProgressSample{
			Phase:           model.PhaseDownloading,
			DownloadedBytes: int64(update.DownloadedBytes),
			TotalBytes:      int64(update.TotalBytes),
		}, true
	case ytdlp.ProgressStatusPostProcessing, ytdlp.ProgressStatusFinished:
		return model.ProgressSample{Phase: model.PhaseConverting}, true
	}
	return model.ProgressSample{}, false
}

// metadataFromInfo converts the engine's extracted info into the validated
// metadata snapshot used everywhere else. Optional fields collapse to their
// zero values; a missing uploader becomes "Unknown" as the prompt caption
// always shows an author.
func metadataFromInfo(info *ytdlp.ExtractedInfo) *model.Metadata {
	md := &model.Metadata{
		Title:     stringValue(info.Title),
		Uploader:  stringValue(info.Uploader),
		Thumbnail: stringValue(info.Thumbnail),
		Duration:  intValue(info.Duration),
	}
	// Width and Height are promoted through an embedded *ExtractedFormat,
	// which is nil when the engine reports no format-level fields.
	if info.ExtractedFormat != nil {
		md.Width = intValue(info.Width)
		md.Height = intValue(info.Height)
	}
	if md.Uploader == "" {
		md.Uploader = "Unknown"
	}
	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		md.Formats = append(md.Formats, model.FormatDescriptor{
			ID:     stringValue(f.FormatID),
			Height: intValue(f.Height),
			Width:  intValue(f.Width),
		})
	}
	return md
}

// stringValue dereferences an optional string.
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// intValue dereferences an optional float reported by the engine as a whole
// number.
func intValue(f *float64) int {
	if f == nil {
		return 0
	}
	return int(*f)
}

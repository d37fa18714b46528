package bot

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/format"
	"github.com/tubefetch/tubefetch/internal/model"
	"github.com/tubefetch/tubefetch/internal/store"
	"github.com/tubefetch/tubefetch/internal/transfer"
)

// Link patterns recognized in plain text messages. The music pattern is
// checked first since the generic one would not match a music.* host anyway.
var (
	videoLinkPattern = regexp.MustCompile(`https?://(www\.)?youtu`)
	musicLinkPattern = regexp.MustCompile(`https?://music\.youtu`)
)

// ProgressBuffer bounds the progress event hand-off between a download
// worker and the goroutine editing chat state for that transfer.
const ProgressBuffer = 16

// Message is an inbound text message at the router boundary.
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// CallbackEvent is an inbound callback at the router boundary. Data carries
// the opaque payload of the pressed inline control.
type CallbackEvent struct {
	ID        string
	ChatID    int64
	UserID    int64
	MessageID int // message carrying the pressed control
	Data      string
}

// Router is the top-level conversation state machine. It receives inbound
// chat events, drives the session store, format catalog, download
// coordinator and transfer manager, and emits outbound chat actions through
// the Messenger boundary. Outbound edits for one transfer are issued by a
// single goroutine, in emission order.
type Router struct {
	messenger Messenger
	engine    download.Engine
	sessions  *store.SessionStore
	users     *store.UserRegistry
	catalog   *format.Catalog
	transfers *transfer.Manager
	log       *logrus.Logger

	wg sync.WaitGroup // in-flight extractions and transfers
}

// NewRouter wires the router to its collaborators.
func NewRouter(
	messenger Messenger,
	engine download.Engine,
	sessions *store.SessionStore,
	users *store.UserRegistry,
	catalog *format.Catalog,
	transfers *transfer.Manager,
	log *logrus.Logger,
) *Router {
	return &Router{
		messenger: messenger,
		engine:    engine,
		sessions:  sessions,
		users:     users,
		catalog:   catalog,
		transfers: transfers,
		log:       log,
	}
}

// Wait blocks until every in-flight extraction and transfer has finished.
// Used on shutdown and in tests; no new events should be handled while
// waiting.
func (r *Router) Wait() {
	r.wg.Wait()
}

// HandleStart handles the start command.
func (r *Router) HandleStart(ctx context.Context, m Message) error {
	r.trackUser(m.UserID)
	_, err := r.messenger.SendText(m.ChatID, TextGreeting, nil)
	return err
}

// HandleText handles a plain text message. Messages that match no known
// link pattern are ignored.
func (r *Router) HandleText(ctx context.Context, m Message) error {
	switch {
	case musicLinkPattern.MatchString(m.Text):
		return r.handleLink(ctx, m, model.SessionKindAudio)
	case videoLinkPattern.MatchString(m.Text):
		return r.handleLink(ctx, m, model.SessionKindVideo)
	}
	return nil
}

// handleLink hands the link off to a worker goroutine and returns
// immediately. Extraction blocks on the engine's worker pool, so it must
// never run on the goroutine dispatching chat events.
func (r *Router) handleLink(ctx context.Context, m Message, kind model.SessionKind) error {
	r.trackUser(m.UserID)
	url := strings.TrimSpace(m.Text)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.extractAndPrompt(ctx, m, url, kind)
	}()
	return nil
}

// extractAndPrompt extracts metadata for the link and, on success, sends the
// format prompt and creates the session under the prompt's key. Runs on a
// worker goroutine; failures are reported in chat or logged.
func (r *Router) extractAndPrompt(ctx context.Context, m Message, url string, kind model.SessionKind) {
	md, err := r.engine.ExtractMetadata(ctx, url)
	if err != nil {
		var extractionErr *model.ExtractionError
		if errors.As(err, &extractionErr) {
			r.log.WithFields(logrus.Fields{
				"chat": m.ChatID,
				"kind": extractionErr.Kind,
			}).WithError(err).Warn("link rejected")
			if _, sendErr := r.messenger.SendText(m.ChatID, extractionErrorText(extractionErr.Kind), nil); sendErr != nil {
				r.log.WithError(sendErr).Error("rejection notice failed")
			}
			return
		}
		r.log.WithField("chat", m.ChatID).WithError(err).Error("metadata extraction failed")
		return
	}

	sess := &model.Session{
		URL:       url,
		Kind:      kind,
		Metadata:  *md,
		Title:     transfer.SanitizeTitle(md.Title),
		Author:    md.Uploader,
		UserID:    m.UserID,
		CreatedAt: time.Now(),
	}
	if err := r.sendPrompt(ctx, m.ChatID, sess); err != nil {
		r.log.WithField("chat", m.ChatID).WithError(err).Error("prompt failed")
	}
}

// sendPrompt sends the selection prompt for the session and stores the
// session under the new prompt's key.
func (r *Router) sendPrompt(ctx context.Context, chatID int64, sess *model.Session) error {
	var options []model.FormatOption
	switch sess.Kind {
	case model.SessionKindAudio:
		options = r.catalog.AudioOptions()
	default:
		options = r.catalog.VideoOptions(&sess.Metadata)
	}
	kb := buildKeyboard(options)

	var ref MsgRef
	var err error
	if sess.Metadata.Thumbnail != "" {
		ref, err = r.messenger.SendPhoto(chatID, sess.Metadata.Thumbnail, sess.Caption(), kb)
	} else {
		ref, err = r.messenger.SendText(chatID, sess.Caption(), kb)
	}
	if err != nil {
		return err
	}

	key := model.SessionKey(ref.ChatID, ref.MessageID)
	if err := r.sessions.Put(key, sess); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"session": key,
		"state":   model.StateAwaitingFormatChoice,
	}).Info("prompt sent")
	return nil
}

// HandleCallback handles a pressed inline control.
func (r *Router) HandleCallback(ctx context.Context, ev CallbackEvent) error {
	r.trackUser(ev.UserID)

	action := ParsePayload(ev.Data)
	if action.Kind == ActionUnknown {
		return r.messenger.AnswerCallback(ev.ID, TextUnknownAction, true)
	}

	key := model.SessionKey(ev.ChatID, ev.MessageID)
	sess, err := r.sessions.Get(key)
	if errors.Is(err, model.ErrSessionNotFound) {
		r.log.WithField("session", key).Info("callback for absent session")
		return r.messenger.AnswerCallback(ev.ID, TextSessionNotFound, true)
	}
	if err != nil {
		return err
	}

	var job *transfer.Job
	req := &download.Request{URL: sess.URL}

	switch action.Kind {
	case ActionAgain:
		return r.handleAgain(ctx, ev, key, sess)

	case ActionVideo:
		if sess.Kind != model.SessionKindVideo {
			return r.messenger.AnswerCallback(ev.ID, "", false)
		}
		job = r.transfers.NewVideoJob(sess.Title, action.Height)
		req.Kind = model.SessionKindVideo
		req.Height = action.Height

	case ActionAudio:
		if sess.Kind != model.SessionKindVideo {
			return r.messenger.AnswerCallback(ev.ID, "", false)
		}
		codec := r.catalog.DefaultAudioCodec()
		job = r.transfers.NewAudioJob(sess.Title, codec)
		req.Kind = model.SessionKindAudio
		req.Codec = codec

	case ActionAudioFormat:
		if sess.Kind != model.SessionKindAudio || !r.catalog.KnownAudioCodec(action.Codec) {
			return r.messenger.AnswerCallback(ev.ID, "", false)
		}
		job = r.transfers.NewAudioJob(sess.Title, action.Codec)
		req.Kind = model.SessionKindAudio
		req.Codec = action.Codec
	}

	req.OutputTemplate = job.OutputTemplate
	return r.startTransfer(ctx, ev, key, sess, job, req)
}

// startTransfer retires the prompt controls, sends the status placeholder,
// and launches the transfer worker.
func (r *Router) startTransfer(ctx context.Context, ev CallbackEvent, key string, sess *model.Session, job *transfer.Job, req *download.Request) error {
	if err := r.messenger.AnswerCallback(ev.ID, "", false); err != nil {
		r.log.WithError(err).Debug("callback ack failed")
	}
	if err := r.messenger.ClearKeyboard(MsgRef{ChatID: ev.ChatID, MessageID: ev.MessageID}); err != nil {
		r.log.WithError(err).Debug("prompt keyboard clear failed")
	}

	status, err := r.messenger.SendText(ev.ChatID, TextDownloading, nil)
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"session":  key,
		"transfer": job.ID,
		"state":    model.StateTransferring,
	}).Info("transfer started")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.runTransfer(ctx, key, sess, status, job, req)
	}()
	return nil
}

// runTransfer executes one transfer end to end on a worker goroutine:
// progress edits, the final media reply, session teardown, and artifact
// cleanup. Cleanup runs after the reply attempt regardless of outcome.
func (r *Router) runTransfer(ctx context.Context, key string, sess *model.Session, status MsgRef, job *transfer.Job, req *download.Request) {
	logEntry := r.log.WithFields(logrus.Fields{"session": key, "transfer": job.ID})

	// Typed hand-off from the engine worker to the single goroutine that
	// edits chat state for this transfer.
	events := make(chan model.ProgressEvent, ProgressBuffer)
	req.OnProgress = func(s model.ProgressSample) {
		if text, ok := job.Throttle.Observe(s); ok {
			events <- model.ProgressEvent{Phase: s.Phase, Percent: s.Percent(), Text: text}
		}
	}

	edits := make(chan struct{})
	go func() {
		defer close(edits)
		for event := range events {
			if err := r.messenger.EditText(status, event.Text); err != nil {
				logEntry.WithError(err).Debug("status edit failed")
			}
		}
	}()

	err := r.engine.Run(ctx, req)
	if err == nil {
		uploading := model.ProgressSample{Phase: model.PhaseUploading}
		if text, ok := job.Throttle.Observe(uploading); ok {
			events <- model.ProgressEvent{Phase: model.PhaseUploading, Text: text}
		}
	}
	close(events)
	<-edits

	defer r.transfers.Cleanup(job)

	if err != nil {
		logEntry.WithError(err).WithField("state", model.StateFailed).Warn("transfer failed")
		r.finishWithFailure(key, status)
		return
	}

	mediaRef, sendErr := r.sendMediaReply(ctx, status.ChatID, sess, job)
	if sendErr != nil {
		logEntry.WithError(sendErr).WithField("state", model.StateFailed).Warn("media reply failed")
		r.finishWithFailure(key, status)
		return
	}

	// Re-home the session under the media message so its "another format"
	// control can rebuild the prompt later.
	newKey := model.SessionKey(mediaRef.ChatID, mediaRef.MessageID)
	if err := r.sessions.Put(newKey, sess); err != nil {
		logEntry.WithError(err).Error("session re-home failed")
	}
	if err := r.sessions.Remove(key); err != nil {
		logEntry.WithError(err).Error("session remove failed")
	}
	if err := r.messenger.Delete(status); err != nil {
		logEntry.WithError(err).Debug("status delete failed")
	}
	logEntry.WithField("state", model.StateSent).Info("transfer complete")
}

// finishWithFailure replaces the status placeholder with the failure notice
// and retires the session.
func (r *Router) finishWithFailure(key string, status MsgRef) {
	if err := r.messenger.EditText(status, TextTransferFailed); err != nil {
		r.log.WithError(err).Debug("failure notice edit failed")
	}
	if err := r.sessions.Remove(key); err != nil {
		r.log.WithField("session", key).WithError(err).Error("session remove failed")
	}
}

// sendMediaReply sends the converted artifact back to chat with a "choose
// another format" control.
func (r *Router) sendMediaReply(ctx context.Context, chatID int64, sess *model.Session, job *transfer.Job) (MsgRef, error) {
	again := Keyboard{{{Label: TextAgainButton, Data: format.DataAgain}}}

	if job.Kind == model.SessionKindVideo {
		return r.messenger.SendVideo(chatID, VideoReply{
			Path:     job.OutputPath,
			Caption:  sess.Title + " — " + sess.Author,
			Width:    sess.Metadata.Width,
			Height:   sess.Metadata.Height,
			Duration: sess.Metadata.Duration,
			Keyboard: again,
		})
	}

	r.transfers.FetchThumbnail(ctx, sess.Metadata.Thumbnail, job)
	return r.messenger.SendAudio(chatID, AudioReply{
		Path:          job.OutputPath,
		Caption:       sess.Title + " - " + sess.Author + " 🎧",
		Title:         sess.Title,
		Performer:     sess.Author,
		ThumbnailPath: job.ThumbnailPath,
		Keyboard:      again,
	})
}

// handleAgain retires the old reply context and resends the prompt under a
// fresh key.
func (r *Router) handleAgain(ctx context.Context, ev CallbackEvent, key string, sess *model.Session) error {
	if err := r.messenger.AnswerCallback(ev.ID, "", false); err != nil {
		r.log.WithError(err).Debug("callback ack failed")
	}
	if err := r.messenger.ClearKeyboard(MsgRef{ChatID: ev.ChatID, MessageID: ev.MessageID}); err != nil {
		r.log.WithError(err).Debug("reply keyboard clear failed")
	}
	if err := r.sessions.Remove(key); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{
		"session": key,
		"state":   model.StateReset,
	}).Info("prompt rebuild requested")
	return r.sendPrompt(ctx, ev.ChatID, sess)
}

// trackUser records the user id in the registry. Registry failures are
// logged but never block event handling.
func (r *Router) trackUser(userID int64) {
	if err := r.users.Track(userID); err != nil {
		r.log.WithField("user", userID).WithError(err).Error("user tracking failed")
	}
}

// buildKeyboard lays format options out two per row. The trailing option
// (the audio-only entry on video prompts) always gets its own row.
func buildKeyboard(options []model.FormatOption) Keyboard {
	if len(options) == 0 {
		return nil
	}

	var kb Keyboard
	var row []Button
	for _, opt := range options[:len(options)-1] {
		row = append(row, Button{Label: opt.Label, Data: opt.Data})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	last := options[len(options)-1]
	kb = append(kb, []Button{{Label: last.Label, Data: last.Data}})
	return kb
}

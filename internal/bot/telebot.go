package bot

import (
	"context"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// TelebotMessenger implements Messenger on top of a telebot client.
type TelebotMessenger struct {
	bot *tele.Bot
}

// NewTelebotMessenger wraps the given telebot client.
func NewTelebotMessenger(bot *tele.Bot) *TelebotMessenger {
	return &TelebotMessenger{bot: bot}
}

// SendText sends a plain text message.
func (t *TelebotMessenger) SendText(chatID int64, text string, kb Keyboard) (MsgRef, error) {
	msg, err := t.bot.Send(tele.ChatID(chatID), text, sendOptions(kb)...)
	if err != nil {
		return MsgRef{}, err
	}
	return refFor(msg), nil
}

// SendPhoto sends a photo by URL with a caption.
func (t *TelebotMessenger) SendPhoto(chatID int64, photoURL, caption string, kb Keyboard) (MsgRef, error) {
	photo := &tele.Photo{File: tele.FromURL(photoURL), Caption: caption}
	msg, err := t.bot.Send(tele.ChatID(chatID), photo, sendOptions(kb)...)
	if err != nil {
		return MsgRef{}, err
	}
	return refFor(msg), nil
}

// SendVideo uploads a video file from disk.
func (t *TelebotMessenger) SendVideo(chatID int64, reply VideoReply) (MsgRef, error) {
	video := &tele.Video{
		File:      tele.FromDisk(reply.Path),
		Caption:   reply.Caption,
		Width:     reply.Width,
		Height:    reply.Height,
		Duration:  reply.Duration,
		Streaming: true,
	}
	msg, err := t.bot.Send(tele.ChatID(chatID), video, sendOptions(reply.Keyboard)...)
	if err != nil {
		return MsgRef{}, err
	}
	return refFor(msg), nil
}

// SendAudio uploads an audio file from disk.
func (t *TelebotMessenger) SendAudio(chatID int64, reply AudioReply) (MsgRef, error) {
	audio := &tele.Audio{
		File:      tele.FromDisk(reply.Path),
		Caption:   reply.Caption,
		Title:     reply.Title,
		Performer: reply.Performer,
	}
	if reply.ThumbnailPath != "" {
		audio.Thumbnail = &tele.Photo{File: tele.FromDisk(reply.ThumbnailPath)}
	}
	msg, err := t.bot.Send(tele.ChatID(chatID), audio, sendOptions(reply.Keyboard)...)
	if err != nil {
		return MsgRef{}, err
	}
	return refFor(msg), nil
}

// EditText replaces the text of an already-sent message.
func (t *TelebotMessenger) EditText(ref MsgRef, text string) error {
	_, err := t.bot.Edit(storedMessage(ref), text)
	return err
}

// ClearKeyboard removes the inline controls from a message.
func (t *TelebotMessenger) ClearKeyboard(ref MsgRef) error {
	_, err := t.bot.EditReplyMarkup(storedMessage(ref), &tele.ReplyMarkup{})
	return err
}

// Delete removes a message from chat.
func (t *TelebotMessenger) Delete(ref MsgRef) error {
	return t.bot.Delete(storedMessage(ref))
}

// AnswerCallback acknowledges a callback, optionally with a notice.
func (t *TelebotMessenger) AnswerCallback(callbackID, text string, alert bool) error {
	return t.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{
		Text:      text,
		ShowAlert: alert,
	})
}

func refFor(msg *tele.Message) MsgRef {
	return MsgRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
}

func storedMessage(ref MsgRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

func sendOptions(kb Keyboard) []interface{} {
	if kb == nil {
		return nil
	}
	return []interface{}{markupFor(kb)}
}

func markupFor(kb Keyboard) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, row := range kb {
		var btns []tele.InlineButton
		for _, b := range row {
			btns = append(btns, tele.InlineButton{Text: b.Label, Data: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, btns)
	}
	return markup
}

// Bind registers the router's handlers on the telebot client.
func Bind(b *tele.Bot, r *Router) {
	b.Handle("/start", func(c tele.Context) error {
		return r.HandleStart(context.Background(), messageFor(c))
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		return r.HandleText(context.Background(), messageFor(c))
	})

	b.Handle(tele.OnCallback, func(c tele.Context) error {
		cb := c.Callback()
		return r.HandleCallback(context.Background(), CallbackEvent{
			ID:        cb.ID,
			ChatID:    cb.Message.Chat.ID,
			UserID:    c.Sender().ID,
			MessageID: cb.Message.ID,
			Data:      strings.TrimPrefix(cb.Data, "\f"),
		})
	})
}

func messageFor(c tele.Context) Message {
	return Message{
		ChatID:    c.Chat().ID,
		UserID:    c.Sender().ID,
		MessageID: c.Message().ID,
		Text:      c.Text(),
	}
}

package broadcast

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tubefetch/internal/bot"
)

type listMessenger struct {
	bot.Messenger

	failFor map[int64]bool
	sentTo  []int64
}

func (m *listMessenger) SendText(chatID int64, text string, kb bot.Keyboard) (bot.MsgRef, error) {
	if m.failFor[chatID] {
		return bot.MsgRef{}, errors.New("forbidden: bot was blocked by the user")
	}
	m.sentTo = append(m.sentTo, chatID)
	return bot.MsgRef{ChatID: chatID, MessageID: len(m.sentTo)}, nil
}

type staticRecipients struct {
	ids []int64
	err error
}

func (r staticRecipients) All() ([]int64, error) { return r.ids, r.err }

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSendDeliversToEveryUser(t *testing.T) {
	messenger := &listMessenger{}
	svc := NewService(messenger, staticRecipients{ids: []int64{1, 2, 3}}, discardLogger())

	delivered, err := svc.Send("план работ на выходные")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if delivered != 3 {
		t.Errorf("delivered = %d, want 3", delivered)
	}
	if len(messenger.sentTo) != 3 {
		t.Errorf("sentTo = %v", messenger.sentTo)
	}
}

func TestSendSkipsFailedDeliveries(t *testing.T) {
	messenger := &listMessenger{failFor: map[int64]bool{2: true}}
	svc := NewService(messenger, staticRecipients{ids: []int64{1, 2, 3}}, discardLogger())

	delivered, err := svc.Send("объявление")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if delivered != 2 {
		t.Errorf("delivered = %d, want 2", delivered)
	}
	if len(messenger.sentTo) != 2 || messenger.sentTo[0] != 1 || messenger.sentTo[1] != 3 {
		t.Errorf("sentTo = %v, want [1 3]", messenger.sentTo)
	}
}

func TestSendFailsWhenListingFails(t *testing.T) {
	svc := NewService(&listMessenger{}, staticRecipients{err: errors.New("db locked")}, discardLogger())

	if _, err := svc.Send("объявление"); err == nil {
		t.Fatal("expected error when recipient listing fails")
	}
}

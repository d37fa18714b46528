package broadcast

// Package broadcast delivers an operator-supplied announcement to every user
// the registry has ever seen. Per-user delivery failures (blocked bot,
// deleted account) are logged and skipped so one dead chat never stops the
// run.

import (
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tubefetch/internal/bot"
)

// Recipients lists the users an announcement goes to.
type Recipients interface {
	All() ([]int64, error)
}

// Service fans one message out to every known user.
type Service struct {
	messenger bot.Messenger
	users     Recipients
	log       *logrus.Logger
}

// NewService creates a broadcast service.
func NewService(messenger bot.Messenger, users Recipients, log *logrus.Logger) *Service {
	return &Service{messenger: messenger, users: users, log: log}
}

// Send delivers text to every registered user and returns how many
// deliveries succeeded. Only listing the recipients can fail the whole run.
func (s *Service) Send(text string) (int, error) {
	ids, err := s.users.All()
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, id := range ids {
		if _, err := s.messenger.SendText(id, text, nil); err != nil {
			s.log.WithField("user", id).WithError(err).Warn("broadcast delivery failed")
			continue
		}
		delivered++
	}
	s.log.WithFields(logrus.Fields{
		"recipients": len(ids),
		"delivered":  delivered,
	}).Info("broadcast finished")
	return delivered, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/tubefetch/tubefetch/internal/bot"
	"github.com/tubefetch/tubefetch/internal/config"
	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/format"
	"github.com/tubefetch/tubefetch/internal/store"
	"github.com/tubefetch/tubefetch/internal/transfer"
)

const (
	lockFile      = "tubefetch.lock"
	pollerTimeout = 10 * time.Second
)

// runBot is the long-running daemon: it holds the single-instance lock, opens
// the stores, wires the router and serves chat events until a termination
// signal arrives.
func runBot(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	lock := flock.New(lockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance is already running (lock %s held)", lockFile)
	}
	defer lock.Unlock()

	// Makes sure a yt-dlp binary is available before any chat event needs it.
	ytdlp.MustInstall(ctx, nil)

	sessions, err := store.OpenSessionStore(cfg.SessionsFile)
	if err != nil {
		return err
	}
	defer sessions.Close()

	users, err := store.OpenUserRegistry(cfg.UsersFile)
	if err != nil {
		return err
	}
	defer users.Close()

	transfers, err := transfer.NewManager(cfg.DownloadDir, cfg.EditCooldownDuration(), cfg.ThumbnailTimeoutDuration(), log)
	if err != nil {
		return err
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: pollerTimeout},
		OnError: func(err error, c tele.Context) {
			log.WithError(err).Error("handler failed")
		},
	})
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	engine := download.NewService(cfg.MaxParallelDownloads, cfg.CookiesFile, log)
	catalog := format.NewCatalog(cfg.AudioFormats)
	router := bot.NewRouter(bot.NewTelebotMessenger(b), engine, sessions, users, catalog, transfers, log)
	bot.Bind(b, router)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-stop
		log.WithField("signal", sig.String()).Info("shutting down")
		b.Stop()
	}()

	log.WithFields(logrus.Fields{
		"bot":          b.Me.Username,
		"max_parallel": cfg.MaxParallelDownloads,
	}).Info("bot started")

	b.Start()

	// Let in-flight transfers finish before the stores close.
	router.Wait()
	log.Info("bot stopped")
	return nil
}

package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/checkers-client/internal/session"
)

// runHeadless follows the session without a terminal UI. Every update is
// logged and alerts are logged at warn, which is as close to "blocking" as a
// log gets.
func runHeadless(ctx context.Context, sess *session.Session, log *zap.Logger) error {
	log = log.Named("headless")

	updates := make(chan session.Update, 32)
	if err := sess.Subscribe("headless", updates); err != nil {
		return err
	}
	defer func() { _ = sess.Unsubscribe("headless") }()

	for {
		select {
		case <-ctx.Done():
			logFinal(sess, log)
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			cur := session.CurrentGame(u.State)
			log.Info("update",
				zap.Int("version", u.Version),
				zap.String("page", string(u.State.Page)),
				zap.Int("games", len(u.State.Games)),
				zap.String("game_id", u.State.GameID),
				zap.String("color", string(u.State.Color)),
				zap.Int("chat", len(cur.Chat)),
			)
			if u.State.Modal.Visible {
				log.Warn("modal", zap.String("title", u.State.Modal.Title), zap.String("body", u.State.Modal.Body))
			}
			for _, n := range u.Notices {
				if a, ok := n.(session.Alert); ok {
					log.Warn("alert", zap.String("text", a.Text))
				}
			}
		}
	}
}

func logFinal(sess *session.Session, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := sess.Snapshot(ctx)
	if err != nil {
		log.Debug("no final snapshot", zap.Error(err))
		return
	}
	log.Info("final state",
		zap.Int("version", v.Version),
		zap.String("page", string(v.State.Page)),
		zap.Int("subscribers", v.NumSubscribers),
	)
}

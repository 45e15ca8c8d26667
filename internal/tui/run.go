package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DoyleJ11/checkers-client/internal/session"
)

const subscriberID = "tui"

// Run takes over the terminal until the user quits, ctx is cancelled or the
// session stops.
func Run(ctx context.Context, sess *session.Session, opts ...tea.ProgramOption) error {
	updates := make(chan session.Update, 32)
	if err := sess.Subscribe(subscriberID, updates); err != nil {
		return err
	}
	defer func() { _ = sess.Unsubscribe(subscriberID) }()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(sess.Actions(), updates), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

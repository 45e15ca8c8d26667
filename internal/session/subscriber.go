package session

import "sync"

// subscriber is one view's mailbox. The loop never blocks on a view: put
// folds a new update into whatever the view has not taken yet, keeping the
// newest state and every notice in order. A goroutine per view hands the
// mailbox over to its outbox as fast as the view reads.
type subscriber struct {
	out chan Update

	mu      sync.Mutex
	pending *Update
	wake    chan struct{}
	quit    chan struct{}
	once    sync.Once
}

func newSubscriber(out chan Update) *subscriber {
	return &subscriber{
		out:  out,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

func (sub *subscriber) put(u Update) {
	sub.mu.Lock()
	if sub.pending != nil && len(sub.pending.Notices) > 0 {
		notices := make([]Notice, 0, len(sub.pending.Notices)+len(u.Notices))
		notices = append(notices, sub.pending.Notices...)
		u.Notices = append(notices, u.Notices...)
	}
	sub.pending = &u
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

func (sub *subscriber) take() (Update, bool) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.pending == nil {
		return Update{}, false
	}
	u := *sub.pending
	sub.pending = nil
	return u, true
}

func (sub *subscriber) stop() {
	sub.once.Do(func() { close(sub.quit) })
}

// run delivers until stop, then closes the outbox.
func (sub *subscriber) run() {
	defer close(sub.out)
	for {
		select {
		case <-sub.quit:
			return
		case <-sub.wake:
		}
		u, ok := sub.take()
		if !ok {
			continue
		}
		select {
		case sub.out <- u:
		case <-sub.quit:
			return
		}
	}
}

package reactions

import (
	"sync"
	"time"
)

// PendingSetup gates a prompt message awaiting its emoji choice
type PendingSetup struct {
	Expires int64
	UserID  string
}

// PendingSetups holds the prompt messages awaiting an emoji reaction.
// Gateway events arrive on separate goroutines, so access is serialized
// through one mutex.
type PendingSetups struct {
	mu       sync.Mutex
	messages map[string]PendingSetup
}

// NewPendingSetups func
func NewPendingSetups() *PendingSetups {
	return &PendingSetups{
		messages: make(map[string]PendingSetup),
	}
}

// Add registers a pending setup keyed by its prompt message ID
func (p *PendingSetups) Add(messageID string, setup PendingSetup) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages[messageID] = setup
}

// Consume removes and returns the pending setup for a message. Only the
// first caller for a given message succeeds; the emoji of that reaction is
// final.
func (p *PendingSetups) Consume(messageID string) (PendingSetup, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	setup, ok := p.messages[messageID]
	if !ok {
		return PendingSetup{}, false
	}

	delete(p.messages, messageID)
	return setup, true
}

// sweep drops gates whose prompt expired
func (p *PendingSetups) sweep(now int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, setup := range p.messages {
		if setup.Expires < now {
			delete(p.messages, key)
		}
	}
}

// ExpirePendingSetups func
func ExpirePendingSetups(pendingSetups *PendingSetups) {
	ticker := time.NewTicker(60 * time.Second)

	for range ticker.C {
		pendingSetups.sweep(time.Now().Unix())
	}
}

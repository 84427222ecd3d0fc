// Package session holds the bearer credential for the current client
// session. The holder is constructed once at startup, restored from the
// durable token slot, and passed explicitly to every component that needs to
// authenticate. There is no ambient global lookup.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/models"
)

// Holder owns the session token. An absent token is the valid logged-out
// state, not an error; callers check Authenticated before attempting
// operations that require auth.
type Holder struct {
	slots  store.SlotRepository
	logger *logger.Logger

	mu        sync.RWMutex
	token     models.Token
	listeners []func()
}

// NewHolder builds a Holder, restoring any token persisted in the token slot
// by a previous session. A missing or unreadable slot starts the session
// logged out.
func NewHolder(ctx context.Context, slots store.SlotRepository, log *logger.Logger) *Holder {
	h := &Holder{slots: slots, logger: log}

	payload, err := slots.GetSlot(ctx, store.SlotToken)
	if err != nil {
		if !errors.Is(err, store.ErrSlotNotFound) {
			log.Debug().Err(err).Msg("token slot unreadable, starting logged out")
		}
		return h
	}

	signed := strings.TrimSpace(string(payload))
	if signed != "" {
		h.token = models.ParseToken(signed)
	}

	return h
}

// Token returns the compact bearer string, or "" when logged out. It
// satisfies the transport layer's token source contract.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token.SignedString
}

// Current returns the full token with parsed claims.
func (h *Holder) Current() models.Token {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Authenticated reports whether a token is present.
func (h *Holder) Authenticated() bool {
	return h.Token() != ""
}

// SetToken stores a freshly issued token and persists it so the session
// survives restarts.
func (h *Holder) SetToken(ctx context.Context, token models.Token) error {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()

	if err := h.slots.PutSlot(ctx, store.SlotToken, []byte(token.SignedString)); err != nil {
		h.logger.Err(err).Msg("failed to persist session token")
		return err
	}
	return nil
}

// Clear drops the token, removes it from durable storage, and notifies every
// subscriber. Unsynced local notes are left untouched: logout invalidates the
// credential, not the user's unsaved work.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.token = models.Token{}
	listeners := make([]func(), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	err := h.slots.DeleteSlot(ctx, store.SlotToken)
	if err != nil {
		h.logger.Err(err).Msg("failed to clear session token slot")
	}

	for _, fn := range listeners {
		fn()
	}

	return err
}

// Subscribe registers fn to run whenever the session is cleared. Used to
// propagate logout to background jobs and open views.
func (h *Holder) Subscribe(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

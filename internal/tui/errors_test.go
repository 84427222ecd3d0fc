package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/service"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "unauthorized", err: adapter.ErrUnauthorized, want: msgSessionExpired},
		{name: "not authenticated", err: service.ErrNotAuthenticated, want: msgSessionExpired},
		{name: "operation in flight", err: service.ErrOperationInFlight, want: msgOperationBusy},
		{name: "note not found", err: service.ErrNoteNotFound, want: msgNoteMissing},
		{name: "saved locally", err: service.ErrSavedLocally, want: msgServerUnreachable},
		{
			name: "wrapped saved locally keeps friendly wording",
			err:  fmt.Errorf("%w: connection refused", service.ErrSavedLocally),
			want: msgServerUnreachable,
		},
		{name: "unknown passes through", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanize(tt.err))
		})
	}
}

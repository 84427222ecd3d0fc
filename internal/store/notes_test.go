package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/mock"
	"github.com/minisamantha/notes-client/models"
)

func newTestNoteStore(t *testing.T) (NoteStore, *mock.MockSlotRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	slots := mock.NewMockSlotRepository(ctrl)
	return NewNoteStore(slots, logger.Nop()), slots
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestNoteStore_Load_MissingSlot(t *testing.T) {
	s, slots := newTestNoteStore(t)
	slots.EXPECT().GetSlot(gomock.Any(), SlotNotes).Return(nil, ErrSlotNotFound)

	assert.Empty(t, s.Load(context.Background()))
}

func TestNoteStore_Load_UnparsablePayload(t *testing.T) {
	// A corrupt cache yields an empty list, never an error: the server
	// copy is authoritative.
	s, slots := newTestNoteStore(t)
	slots.EXPECT().GetSlot(gomock.Any(), SlotNotes).Return([]byte("{broken"), nil)

	assert.Empty(t, s.Load(context.Background()))
}

func TestNoteStore_Load_RoundTrip(t *testing.T) {
	notes := []models.Note{
		{ID: models.NewLocalIdentity(), Title: "draft idea", Body: "b", Unsynced: true},
		{ID: models.RemoteIdentity(3), Title: "synced", Body: "b"},
	}
	payload, err := json.Marshal(notes)
	require.NoError(t, err)

	s, slots := newTestNoteStore(t)
	slots.EXPECT().GetSlot(gomock.Any(), SlotNotes).Return(payload, nil)

	got := s.Load(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, notes[0].ID, got[0].ID)
	assert.True(t, got[0].Unsynced)
	assert.Equal(t, "synced", got[1].Title)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestNoteStore_Save_NilBecomesEmptyList(t *testing.T) {
	s, slots := newTestNoteStore(t)
	slots.EXPECT().
		PutSlot(gomock.Any(), SlotNotes, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value []byte) error {
			assert.JSONEq(t, "[]", string(value))
			return nil
		})

	require.NoError(t, s.Save(context.Background(), nil))
}

func TestNoteStore_Save_PersistError(t *testing.T) {
	s, slots := newTestNoteStore(t)
	slots.EXPECT().PutSlot(gomock.Any(), SlotNotes, gomock.Any()).Return(assert.AnError)

	err := s.Save(context.Background(), []models.Note{{ID: models.RemoteIdentity(1)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// memSlotRepo is a map-backed SlotRepository for round-trip tests that need
// a real persisted payload rather than per-call expectations.
type memSlotRepo struct{ data map[string][]byte }

func newMemSlotRepo() *memSlotRepo { return &memSlotRepo{data: make(map[string][]byte)} }

func (m *memSlotRepo) GetSlot(_ context.Context, name string) ([]byte, error) {
	value, ok := m.data[name]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return value, nil
}

func (m *memSlotRepo) PutSlot(_ context.Context, name string, value []byte) error {
	m.data[name] = value
	return nil
}

func (m *memSlotRepo) DeleteSlot(_ context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func TestNoteStore_SaveLoadIsIdempotent(t *testing.T) {
	slots := newMemSlotRepo()
	s := NewNoteStore(slots, logger.Nop())
	ctx := context.Background()

	notes := []models.Note{
		{ID: models.NewLocalIdentity(), Title: "offline", Body: "b", Unsynced: true},
		{ID: models.RemoteIdentity(3), Title: "synced", Body: "b"},
	}
	require.NoError(t, s.Save(ctx, notes))
	first := append([]byte(nil), slots.data[SlotNotes]...)

	// Re-saving what was loaded must not change the persisted bytes.
	require.NoError(t, s.Save(ctx, s.Load(ctx)))
	assert.Equal(t, first, slots.data[SlotNotes])

	require.NoError(t, s.Save(ctx, s.Load(ctx)))
	assert.Equal(t, first, slots.data[SlotNotes])
}

// ── Merge ────────────────────────────────────────────────────────────────────

func TestMerge_UnsyncedFirstThenRemote(t *testing.T) {
	localOnly := models.Note{ID: models.NewLocalIdentity(), Title: "offline", Unsynced: true}
	stale := models.Note{ID: models.RemoteIdentity(1), Title: "old title"}
	fresh := []models.Note{
		{ID: models.RemoteIdentity(1), Title: "new title"},
		{ID: models.RemoteIdentity(2), Title: "second"},
	}

	merged := Merge([]models.Note{localOnly, stale}, fresh)

	require.Len(t, merged, 3)
	assert.Equal(t, localOnly.ID, merged[0].ID)
	assert.Equal(t, "new title", merged[1].Title)
	assert.Equal(t, "second", merged[2].Title)
}

func TestMerge_RemoteDeletionPropagates(t *testing.T) {
	prior := []models.Note{
		{ID: models.RemoteIdentity(1), Title: "kept"},
		{ID: models.RemoteIdentity(2), Title: "deleted elsewhere"},
	}
	fresh := []models.Note{{ID: models.RemoteIdentity(1), Title: "kept"}}

	merged := Merge(prior, fresh)

	require.Len(t, merged, 1)
	assert.Equal(t, int64(1), merged[0].ID.Remote)
}

func TestMerge_EmptyRemoteKeepsOnlyUnsynced(t *testing.T) {
	localOnly := models.Note{ID: models.NewLocalIdentity(), Unsynced: true}
	prior := []models.Note{localOnly, {ID: models.RemoteIdentity(5)}}

	merged := Merge(prior, nil)

	require.Len(t, merged, 1)
	assert.True(t, merged[0].ID.IsLocal())
}

func TestMerge_EmptyBothSides(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}

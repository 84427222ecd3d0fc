package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/models"
)

// staticTokens is a fixed TokenSource for tests.
type staticTokens struct {
	token string
}

func (s staticTokens) Token() string { return s.token }

func newTestAdapter(t *testing.T, serverURL, token string) ServerAdapter {
	t.Helper()
	return NewHTTPServerAdapter(
		HTTPClientConfig{BaseURL: serverURL},
		staticTokens{token: token},
		logger.Nop(),
	)
}

// ── Signup / Login ───────────────────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signup", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds.Email)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	err := a.Signup(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"})

	require.NoError(t, err)
}

func TestSignup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "email already registered"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	err := a.Signup(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestLogin_Success(t *testing.T) {
	const signed = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhbGljZSJ9.sig"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": signed})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	token, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, signed, token.SignedString)
	assert.Equal(t, "alice", token.Subject())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

// ── MyNotes ──────────────────────────────────────────────────────────────────

func TestMyNotes_LegacyArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "first", "body": "b1", "is_draft": false},
			{"id": 2, "title": "second", "body": "b2", "is_draft": true}
		]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok-123")
	notes, err := a.MyNotes(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, models.RemoteIdentity(1), notes[0].ID)
	assert.False(t, notes[0].IsDraft)
	assert.True(t, notes[1].IsDraft)
}

func TestMyNotes_PaginatedEnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{"id": 7, "title": "enveloped", "body": "b", "labels": [{"id": 3, "name": "Work"}]}],
			"pagination": {"page": 1, "total": 1}
		}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	notes, err := a.MyNotes(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.RemoteIdentity(7), notes[0].ID)
	require.Len(t, notes[0].Labels, 1)
	// Numeric label ids are normalised to strings.
	assert.Equal(t, "3", notes[0].Labels[0].ID)
}

func TestMyNotes_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "expired")
	_, err := a.MyNotes(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── PublicNotes ──────────────────────────────────────────────────────────────

func TestPublicNotes_CarriesAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		// The public feed needs no credential.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": 9, "title": "hello", "body": "world", "users": {"name": "Bob"}}]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	notes, err := a.PublicNotes(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Bob", notes[0].Author)
}

// ── CreateNote ───────────────────────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// The labels field must be an array on the wire, never null.
		assert.Contains(t, string(body), `"labels":[]`)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 11, "title": "created", "body": "b", "is_draft": false}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	note, err := a.CreateNote(context.Background(), models.NoteInput{Title: "created", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, models.RemoteIdentity(11), note.ID)
	assert.Equal(t, "created", note.Title)
}

func TestCreateNote_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "title is required"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	_, err := a.CreateNote(context.Background(), models.NoteInput{Body: "b"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "title is required")
}

// ── UpdateNote ───────────────────────────────────────────────────────────────

func TestUpdateNote_PublishSendsIsDraftFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/posts/5", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"is_draft":false`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "title": "t", "body": "b", "is_draft": false}`))
	}))
	defer srv.Close()

	published := false
	a := newTestAdapter(t, srv.URL, "tok")
	note, err := a.UpdateNote(context.Background(), 5, UpdateNoteRequest{Title: "t", Body: "b", IsDraft: &published})

	require.NoError(t, err)
	assert.False(t, note.IsDraft)
}

func TestUpdateNote_OmitsIsDraftWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// A plain edit must not touch draft membership.
		assert.NotContains(t, string(body), "is_draft")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "title": "t", "body": "b", "is_draft": true}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	note, err := a.UpdateNote(context.Background(), 5, UpdateNoteRequest{Title: "t", Body: "b"})

	require.NoError(t, err)
	assert.True(t, note.IsDraft)
}

// ── DeleteNote ───────────────────────────────────────────────────────────────

func TestDeleteNote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/posts/8", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	assert.NoError(t, a.DeleteNote(context.Background(), 8))
}

func TestDeleteNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	assert.ErrorIs(t, a.DeleteNote(context.Background(), 8), ErrNotFound)
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestMyNotes_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	_, err := a.MyNotes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
	assert.Contains(t, err.Error(), "boom")
}

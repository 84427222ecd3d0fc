package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/models"
)

// HTTPClientConfig holds the settings for the REST adapter.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
	tokens TokenSource
	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter].
// The bearer credential is read from tokens on every request, so logins and
// logouts propagate without reconfiguring the adapter.
func NewHTTPServerAdapter(cfg HTTPClientConfig, tokens TokenSource, log *logger.Logger) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli, tokens: tokens, logger: log}
}

func (h *httpServerAdapter) Signup(ctx context.Context, creds models.Credentials) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/api/auth/signup")
	if err != nil {
		return fmt.Errorf("signup request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	var body struct {
		Token string `json:"token"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Token{}, fmt.Errorf("decode login response: %w", err)
	}
	if body.Token == "" {
		return models.Token{}, fmt.Errorf("login response carried no token")
	}

	return models.ParseToken(body.Token), nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.Profile, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/profile")
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err = json.Unmarshal(resp.Body(), &profile); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile response: %w", err)
	}

	return profile, nil
}

func (h *httpServerAdapter) MyNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/posts/me")
	if err != nil {
		return nil, fmt.Errorf("my notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	notes, err := decodeNotesList(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("my notes response: %w", err)
	}

	return notes, nil
}

func (h *httpServerAdapter) PublicNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/posts")
	if err != nil {
		return nil, fmt.Errorf("public notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	notes, err := decodeNotesList(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("public notes response: %w", err)
	}

	return notes, nil
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, input models.NoteInput) (models.Note, error) {
	payload := struct {
		Title   string         `json:"title"`
		Body    string         `json:"body"`
		IsDraft bool           `json:"is_draft"`
		Labels  []models.Label `json:"labels"`
	}{
		Title:   input.Title,
		Body:    input.Body,
		IsDraft: input.IsDraft,
		Labels:  labelsOrEmpty(input.Labels),
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/posts")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	note, err := decodeNote(resp.Body())
	if err != nil {
		return models.Note{}, fmt.Errorf("create note response: %w", err)
	}

	return note, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, id int64, req UpdateNoteRequest) (models.Note, error) {
	req.Labels = labelsOrEmpty(req.Labels)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/posts/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	note, err := decodeNote(resp.Body())
	if err != nil {
		return models.Note{}, fmt.Errorf("update note response: %w", err)
	}

	return note, nil
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/posts/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// labelsOrEmpty keeps the labels field an empty array rather than null on the
// wire; the server rejects null label lists.
func labelsOrEmpty(labels []models.Label) []models.Label {
	if labels == nil {
		return []models.Label{}
	}
	return labels
}

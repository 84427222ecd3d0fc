package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minisamantha/notes-client/models"
)

// noteDoc is the wire shape of a server-confirmed note.
type noteDoc struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	IsDraft   bool           `json:"is_draft"`
	Labels    []models.Label `json:"labels"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Users is the nested author record present on public feed entries.
	Users *struct {
		Name string `json:"name"`
	} `json:"users,omitempty"`
}

// notesEnvelope is the paginated response variant.
type notesEnvelope struct {
	Data       []noteDoc       `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
}

func (d noteDoc) toNote() models.Note {
	n := models.Note{
		ID:        models.RemoteIdentity(d.ID),
		Title:     d.Title,
		Body:      d.Body,
		IsDraft:   d.IsDraft,
		Labels:    d.Labels,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Users != nil {
		n.Author = d.Users.Name
	}
	return n
}

// decodeNotesList normalises both response shapes the server is known to
// emit, the legacy bare array and the paginated {data, pagination} envelope,
// into one internal list. The envelope is detected by the presence of the
// data field, matching the contract rather than sniffing field types.
func decodeNotesList(body []byte) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var docs []noteDoc
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("decode notes array: %w", err)
		}
	} else {
		var env notesEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode notes envelope: %w", err)
		}
		docs = env.Data
	}

	notes := make([]models.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toNote())
	}
	return notes, nil
}

// decodeNote decodes a single server-confirmed note.
func decodeNote(body []byte) (models.Note, error) {
	var d noteDoc
	if err := json.Unmarshal(body, &d); err != nil {
		return models.Note{}, fmt.Errorf("decode note: %w", err)
	}
	return d.toNote(), nil
}

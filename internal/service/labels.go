package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/models"
)

// defaultLabels are always available on a fresh client (or after a catalog
// reset).
func defaultLabels() []models.Label {
	return []models.Label{
		{ID: "1", Name: "Work", Color: "#3b82f6"},
		{ID: "2", Name: "Personal", Color: "#10b981"},
		{ID: "3", Name: "Ideas", Color: "#f59e0b"},
		{ID: "4", Name: "Important", Color: "#ef4444"},
		{ID: "5", Name: "Learning", Color: "#8b5cf6"},
		{ID: "6", Name: "Projects", Color: "#06b6d4"},
	}
}

type labelCatalog struct {
	slots  store.SlotRepository
	logger *logger.Logger
}

// NewLabelService builds the label catalog backed by the labels slot.
// New labels get UUID identities; timestamp-derived ids collide under rapid
// creation and are not used.
func NewLabelService(slots store.SlotRepository, log *logger.Logger) LabelService {
	return &labelCatalog{slots: slots, logger: log}
}

func (l *labelCatalog) All(ctx context.Context) []models.Label {
	payload, err := l.slots.GetSlot(ctx, store.SlotLabels)
	if err != nil {
		if !errors.Is(err, store.ErrSlotNotFound) {
			l.logger.Debug().Err(err).Msg("labels slot unreadable, using defaults")
		}
		return defaultLabels()
	}

	var labels []models.Label
	if err = json.Unmarshal(payload, &labels); err != nil {
		l.logger.Debug().Err(err).Msg("labels slot unparsable, using defaults")
		return defaultLabels()
	}

	return labels
}

func (l *labelCatalog) Add(ctx context.Context, name, color string) (models.Label, error) {
	if name == "" {
		return models.Label{}, fmt.Errorf("%w: label name is required", ErrValidation)
	}

	label := models.Label{ID: uuid.NewString(), Name: name, Color: color}
	labels := append(l.All(ctx), label)

	if err := l.persist(ctx, labels); err != nil {
		return models.Label{}, err
	}
	return label, nil
}

func (l *labelCatalog) Update(ctx context.Context, id string, name, color string) error {
	labels := l.All(ctx)
	for i := range labels {
		if labels[i].ID != id {
			continue
		}
		if name != "" {
			labels[i].Name = name
		}
		if color != "" {
			labels[i].Color = color
		}
		return l.persist(ctx, labels)
	}

	return ErrLabelNotFound
}

func (l *labelCatalog) Delete(ctx context.Context, id string) error {
	labels := l.All(ctx)
	kept := labels[:0]
	for _, label := range labels {
		if label.ID != id {
			kept = append(kept, label)
		}
	}
	if len(kept) == len(labels) {
		return ErrLabelNotFound
	}

	return l.persist(ctx, kept)
}

func (l *labelCatalog) Get(ctx context.Context, id string) (models.Label, bool) {
	for _, label := range l.All(ctx) {
		if label.ID == id {
			return label, true
		}
	}
	return models.Label{}, false
}

func (l *labelCatalog) ResetToDefaults(ctx context.Context) error {
	return l.persist(ctx, defaultLabels())
}

func (l *labelCatalog) persist(ctx context.Context, labels []models.Label) error {
	payload, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	if err = l.slots.PutSlot(ctx, store.SlotLabels, payload); err != nil {
		return fmt.Errorf("persist labels slot: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"errors"

	"github.com/minisamantha/notes-client/internal/config"
	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/internal/tui"
)

// App composes the wired service layer and the UI into one runnable client.
type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	workers  config.ClientWorkers
	logger   *logger.Logger
}

// NewApp assembles the client application from its already constructed parts.
func NewApp(services *service.ClientServices, ui *tui.TUI, workers config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and ui")
	}
	return &App{services: services, ui: ui, workers: workers, logger: log}, nil
}

// Run starts the background refresh job, restores an interrupted note form
// if one was autosaved, and blocks inside the UI loop until the user exits.
func (a *App) Run(ctx context.Context) error {
	a.services.RefreshJob.Start(ctx, a.workers.RefreshInterval)
	defer a.services.RefreshJob.Stop()

	if a.services.Form.RestoreAutosave(ctx) {
		a.logger.Debug().Msg("restored autosaved note form")
	}

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

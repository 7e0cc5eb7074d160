package service

import (
	"context"
	"time"

	"booker-api/core/cache"
	"booker-api/core/constants"
	"booker-api/core/errors"
	"booker-api/core/logger"
	avdto "booker-api/modules/availability/dto"
	authdto "booker-api/modules/auth/dto"
	"booker-api/modules/overlay/dto"
)

const (
	settingsStorageKey = "overlayCalendarSettings"
	layoutWeekView     = "week_view"
)

type LoginURLBuilder interface {
	ContinueWithProviderURL(ctx context.Context, returnTo string) (*authdto.ContinueURLResponse, *errors.AppError)
}

// Container is the overlay toggle with its continue prompt and settings surface, per device.
type Container interface {
	Render(ctx context.Context, deviceID string, req dto.RenderRequest) (*dto.ViewResponse, *errors.AppError)
	Toggle(ctx context.Context, deviceID string, req dto.ToggleRequest) (*dto.ViewResponse, *errors.AppError)
	SetSettingsOpen(ctx context.Context, deviceID string, req dto.SettingsRequest) (*dto.ViewResponse, *errors.AppError)
	DismissPrompt(ctx context.Context, deviceID string) *errors.AppError

	ListSelection(ctx context.Context, deviceID string) ([]dto.SelectionRequest, *errors.AppError)
	AddSelection(ctx context.Context, deviceID string, sel dto.SelectionRequest) ([]dto.SelectionRequest, *errors.AppError)
	RemoveSelection(ctx context.Context, deviceID string, sel dto.SelectionRequest) ([]dto.SelectionRequest, *errors.AppError)
	ClearSelection(ctx context.Context, deviceID string) *errors.AppError
}

type container struct {
	cache      cache.Cache
	sessions   SessionProvider
	reconciler *Reconciler
	busy       BusyStateSink
	login      LoginURLBuilder
	now        func() time.Time
}

func NewContainer(c cache.Cache, sessions SessionProvider, reconciler *Reconciler, busy BusyStateSink, login LoginURLBuilder) Container {
	return &container{
		cache:      c,
		sessions:   sessions,
		reconciler: reconciler,
		busy:       busy,
		login:      login,
		now:        time.Now,
	}
}

// device is the state loaded for one request.
type device struct {
	id         string
	store      KeyValueStore
	gate       *Gate
	selection  *LocalSet[CalendarSelection]
	session    *Session
	hasSession bool
}

func (c *container) load(ctx context.Context, deviceID string) (*device, *errors.AppError) {
	store := NewDeviceStore(c.cache, deviceID)
	gate, err := LoadGate(ctx, store)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load overlay state", err)
	}
	selection, err := NewLocalSet[CalendarSelection](ctx, store, constants.OverlayStorageKey)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load overlay selection", err)
	}
	// busy state computed for an earlier selection is never shown
	selection.Subscribe(func([]CalendarSelection) {
		if err := c.busy.Drop(ctx, deviceID); err != nil {
			logger.Warn("Container:DropBusyState:Error", "device_id", deviceID, "error", err)
		}
	})
	session, ok := c.sessions.Session(ctx)
	return &device{
		id:         deviceID,
		store:      store,
		gate:       gate,
		selection:  selection,
		session:    session,
		hasSession: ok,
	}, nil
}

func (c *container) Render(ctx context.Context, deviceID string, req dto.RenderRequest) (*dto.ViewResponse, *errors.AppError) {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	nav := &replaceRecorder{}
	return c.render(ctx, d, req, NewQueryState(req.URL, nav), nav)
}

// Toggle is the switch. Without a session it only opens or closes the continue prompt.
func (c *container) Toggle(ctx context.Context, deviceID string, req dto.ToggleRequest) (*dto.ViewResponse, *errors.AppError) {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	nav := &replaceRecorder{}
	qs := NewQueryState(req.URL, nav)

	if !d.hasSession {
		if err := d.gate.RequestPrompt(ctx, req.State); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update overlay prompt", err)
		}
	} else {
		qs.SetEnabled(req.State)
	}

	logger.Info("Container:Toggle", "device_id", deviceID, "state", req.State, "session", d.hasSession)
	return c.render(ctx, d, req.RenderRequest, qs, nav)
}

func (c *container) SetSettingsOpen(ctx context.Context, deviceID string, req dto.SettingsRequest) (*dto.ViewResponse, *errors.AppError) {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	value := []byte("0")
	if req.Open && d.hasSession {
		value = []byte("1")
	}
	if err := d.store.Set(ctx, settingsStorageKey, value); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update overlay settings", err)
	}
	nav := &replaceRecorder{}
	return c.render(ctx, d, req.RenderRequest, NewQueryState(req.URL, nav), nav)
}

func (c *container) DismissPrompt(ctx context.Context, deviceID string) *errors.AppError {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return appErr
	}
	if err := d.gate.Dismiss(ctx); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to dismiss overlay prompt", err)
	}
	return nil
}

func (c *container) ListSelection(ctx context.Context, deviceID string) ([]dto.SelectionRequest, *errors.AppError) {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	return toSelectionResponse(d.selection.Items()), nil
}

func (c *container) AddSelection(ctx context.Context, deviceID string, sel dto.SelectionRequest) ([]dto.SelectionRequest, *errors.AppError) {
	if sel.CredentialID <= 0 || sel.ExternalID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "credentialId and externalId are required", nil)
	}
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	if err := d.selection.Add(ctx, CalendarSelection(sel)); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to add calendar", err)
	}
	return toSelectionResponse(d.selection.Items()), nil
}

func (c *container) RemoveSelection(ctx context.Context, deviceID string, sel dto.SelectionRequest) ([]dto.SelectionRequest, *errors.AppError) {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return nil, appErr
	}
	if !d.selection.Has(CalendarSelection(sel)) {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar is not selected", nil)
	}
	if err := d.selection.Remove(ctx, CalendarSelection(sel)); err != nil {
		return nil, errors.NewAppError(errors.ErrDeleteFailed, "failed to remove calendar", err)
	}
	return toSelectionResponse(d.selection.Items()), nil
}

func (c *container) ClearSelection(ctx context.Context, deviceID string) *errors.AppError {
	d, appErr := c.load(ctx, deviceID)
	if appErr != nil {
		return appErr
	}
	if err := d.selection.Clear(ctx); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to clear calendars", err)
	}
	return nil
}

func (c *container) render(ctx context.Context, d *device, req dto.RenderRequest, qs *QueryState, nav *replaceRecorder) (*dto.ViewResponse, *errors.AppError) {
	if _, err := d.gate.Observe(ctx, d.hasSession, qs); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update overlay prompt", err)
	}

	enabled := qs.Enabled()
	date := req.SelectedDate
	if date == "" {
		date = c.now().In(LoadViewerLocation(req.Timezone)).Format("2006-01-02")
	}
	outcome := c.reconciler.Reconcile(ctx, d.id, d.selection, enabled, date, req.Timezone)

	view := &dto.ViewResponse{
		SwitchChecked:      enabled,
		SwitchVisibleFrom:  switchBreakpoint(req.Layout),
		ShowSettingsButton: d.hasSession,
		ContinuePromptOpen: d.gate.State() == GatePrompting,
		SettingsOpen:       d.hasSession && c.settingsOpen(ctx, d.store),
		ReplaceURL:         nav.url,
		Selection:          toSelectionResponse(d.selection.Items()),
		BusyDates:          []avdto.BusyTime{},
	}
	if d.hasSession && enabled && d.selection.Size() > 0 {
		busy, err := c.busy.Get(ctx, d.id)
		if err != nil {
			logger.Warn("Container:Render:BusyState:Error", "device_id", d.id, "error", err)
		} else if busy != nil {
			view.BusyDates = busy
		}
	}
	if view.ContinuePromptOpen && c.login != nil {
		resp, appErr := c.login.ContinueWithProviderURL(ctx, qs.WithEnabled(true))
		if appErr != nil {
			logger.Warn("Container:Render:ContinueURL:Error", "error", appErr)
		} else {
			view.ContinueURL = resp.URL
		}
	}

	logger.Debug("Container:Render", "device_id", d.id, "enabled", enabled, "outcome", outcome.String())
	return view, nil
}

func (c *container) settingsOpen(ctx context.Context, store KeyValueStore) bool {
	data, ok, err := store.Get(ctx, settingsStorageKey)
	if err != nil || !ok {
		return false
	}
	return string(data) == "1"
}

func switchBreakpoint(layout string) string {
	if layout == layoutWeekView {
		return "lg"
	}
	return "md"
}

func toSelectionResponse(items []CalendarSelection) []dto.SelectionRequest {
	out := make([]dto.SelectionRequest, len(items))
	for i, item := range items {
		out[i] = dto.SelectionRequest(item)
	}
	return out
}

type replaceRecorder struct {
	url string
}

func (r *replaceRecorder) Replace(url string, _ NavigateOptions) {
	r.url = url
}

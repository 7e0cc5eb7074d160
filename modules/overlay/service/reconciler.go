package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"booker-api/core/cache"
	"booker-api/core/constants"
	"booker-api/core/logger"
	"booker-api/core/queue"
	"booker-api/core/utils"
	avdto "booker-api/modules/availability/dto"
	avservice "booker-api/modules/availability/service"
)

type CalendarSelection struct {
	CredentialID int64  `json:"credentialId"`
	ExternalID   string `json:"externalId"`
}

type Session struct {
	UserID int64
}

type SessionProvider interface {
	Session(ctx context.Context) (*Session, bool)
}

// ContextSessions reads the session the auth middleware put on the request context.
type ContextSessions struct{}

func (ContextSessions) Session(ctx context.Context) (*Session, bool) {
	claims, ok := utils.TokenDataFromContext(ctx)
	if !ok {
		return nil, false
	}
	return &Session{UserID: claims.UserID}, true
}

type BusyTimesQuerier interface {
	CalendarOverlay(ctx context.Context, userID int64, req avdto.CalendarOverlayRequest) ([]avdto.BusyTime, error)
}

// BusyStateSink holds the corrected busy intervals of each scope. Replace swaps the whole list.
type BusyStateSink interface {
	Replace(ctx context.Context, scope string, busy []avdto.BusyTime) error
	Get(ctx context.Context, scope string) ([]avdto.BusyTime, error)
	Drop(ctx context.Context, scope string) error
}

// Inputs is everything a reaction depends on.
type Inputs struct {
	Session   *Session
	Selection []CalendarSelection
	Enabled   bool
	Date      string
	Timezone  string
}

// Evaluate returns the busy-time request for in, or nil when no query may be issued:
// without a session, with an empty selection or with the flag off.
func Evaluate(in Inputs) *avdto.CalendarOverlayRequest {
	if in.Session == nil || len(in.Selection) == 0 || !in.Enabled {
		return nil
	}
	tz := in.Timezone
	if tz == "" {
		tz = constants.OverlayDefaultTimezone
	}
	calendars := make([]avdto.CalendarToLoad, len(in.Selection))
	for i, sel := range in.Selection {
		calendars[i] = avdto.CalendarToLoad{CredentialID: sel.CredentialID, ExternalID: sel.ExternalID}
	}
	return &avdto.CalendarOverlayRequest{
		LoggedInUsersTz: tz,
		DateFrom:        in.Date,
		DateTo:          in.Date,
		CalendarsToLoad: calendars,
	}
}

type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeApplied
	OutcomeCleared
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeCleared:
		return "cleared"
	case OutcomeStale:
		return "stale"
	default:
		return "skipped"
	}
}

// Reconciler turns overlay inputs into corrected busy state. Each reaction of a scope takes a
// generation; only the latest generation of a scope may write its state.
type Reconciler struct {
	sessions  SessionProvider
	querier   BusyTimesQuerier
	sink      BusyStateSink
	publisher queue.Publisher
	now       func() time.Time
	local     *time.Location

	mu          sync.Mutex
	generations map[string]uint64
}

func NewReconciler(sessions SessionProvider, querier BusyTimesQuerier, sink BusyStateSink, publisher queue.Publisher, now func() time.Time, local *time.Location) *Reconciler {
	if now == nil {
		now = time.Now
	}
	if local == nil {
		local = time.Local
	}
	return &Reconciler{
		sessions:    sessions,
		querier:     querier,
		sink:        sink,
		publisher:   publisher,
		now:         now,
		local:       local,
		generations: make(map[string]uint64),
	}
}

// Reconcile runs one reaction for scope. A failed query clears the whole selection; the failure
// itself is not returned.
func (r *Reconciler) Reconcile(ctx context.Context, scope string, selection *LocalSet[CalendarSelection], enabled bool, date, timezone string) Outcome {
	session, _ := r.sessions.Session(ctx)
	gen := r.begin(scope)

	req := Evaluate(Inputs{
		Session:   session,
		Selection: selection.Items(),
		Enabled:   enabled,
		Date:      date,
		Timezone:  timezone,
	})
	if req == nil {
		return OutcomeSkipped
	}

	busy, err := r.querier.CalendarOverlay(ctx, session.UserID, *req)
	if !r.isLatest(scope, gen) {
		logger.Debug("Reconciler:Reconcile:Stale", "scope", scope, "generation", gen)
		return OutcomeStale
	}
	if err != nil {
		logger.Warn("Reconciler:Reconcile:QueryFailed", "scope", scope, "user_id", session.UserID, "error", err)
		if clearErr := selection.Clear(ctx); clearErr != nil {
			logger.Error("Reconciler:Reconcile:ClearSelection:Error", "scope", scope, "error", clearErr)
		}
		if dropErr := r.sink.Drop(ctx, scope); dropErr != nil {
			logger.Warn("Reconciler:Reconcile:DropBusyState:Error", "scope", scope, "error", dropErr)
		}
		r.publishInvalidated(ctx, session.UserID, scope)
		return OutcomeCleared
	}

	offset := OffsetBetween(r.now(), LoadViewerLocation(req.LoggedInUsersTz), r.local)
	if err := r.sink.Replace(ctx, scope, ShiftBusyTimes(busy, offset)); err != nil {
		logger.Error("Reconciler:Reconcile:ReplaceBusyState:Error", "scope", scope, "error", err)
	}

	logger.Debug("Reconciler:Reconcile:Applied", "scope", scope, "busy", len(busy), "offset", offset.String())
	return OutcomeApplied
}

func (r *Reconciler) begin(scope string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[scope]++
	return r.generations[scope]
}

func (r *Reconciler) isLatest(scope string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[scope] == gen
}

func (r *Reconciler) publishInvalidated(ctx context.Context, userID int64, scope string) {
	if r.publisher == nil {
		return
	}
	payload := avdto.SelectionInvalidatedPayload{UserID: userID, DeviceID: scope}
	if err := r.publisher.Enqueue(ctx, avservice.TaskSelectionInvalidated, payload); err != nil {
		logger.Warn("Reconciler:PublishInvalidated:Error", "scope", scope, "error", err)
	}
}

const busyStatePrefix = "overlay:busy:"

// BusyState keeps each scope's corrected intervals in the cache. Entries expire after ttl
// unless a reaction rewrites them.
type BusyState struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewBusyState(c cache.Cache, ttl time.Duration) *BusyState {
	return &BusyState{cache: c, ttl: ttl}
}

func (s *BusyState) Replace(ctx context.Context, scope string, busy []avdto.BusyTime) error {
	if busy == nil {
		busy = []avdto.BusyTime{}
	}
	data, err := json.Marshal(busy)
	if err != nil {
		return fmt.Errorf("failed to encode busy state: %w", err)
	}
	return s.cache.Set(ctx, busyStatePrefix+scope, data, s.ttl)
}

func (s *BusyState) Get(ctx context.Context, scope string) ([]avdto.BusyTime, error) {
	data, ok, err := s.cache.Get(ctx, busyStatePrefix+scope)
	if err != nil || !ok {
		return nil, err
	}
	var busy []avdto.BusyTime
	if err := json.Unmarshal(data, &busy); err != nil {
		return nil, fmt.Errorf("failed to decode busy state: %w", err)
	}
	return busy, nil
}

func (s *BusyState) Drop(ctx context.Context, scope string) error {
	return s.cache.Delete(ctx, busyStatePrefix+scope)
}

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"currency-converter/internal/i18n"
	"currency-converter/internal/models"

	"github.com/qmuntal/stateless"
)

type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateFinished State = "finished"
	StateError    State = "error"
	StateEmpty    State = "empty"
)

const (
	triggerFetch   = "fetch"
	triggerSucceed = "succeed"
	triggerFail    = "fail"
	triggerDismiss = "dismiss"
)

// ConversionRecorder receives every conversion attempt.
type ConversionRecorder interface {
	RecordConversion(ctx context.Context, event models.ConversionEvent)
}

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	ID           string  `json:"id"`
	State        State   `json:"state"`
	Loading      bool    `json:"loading"`
	ShowError    bool    `json:"show_error"`
	ErrorKey     string  `json:"error_key,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	Result       float64 `json:"result"`
	Formatted    string  `json:"formatted,omitempty"`
	RatesBase    string  `json:"rates_base,omitempty"`
	RatesDate    string  `json:"rates_date,omitempty"`
}

// Session holds the conversion state of one client. Its rate table lives in
// its own Converter and is only replaced when a fetch completes.
//
// Every fetch takes a new generation. Only the fetch of the current
// generation may move the state machine out of loading or store a result;
// older ones return ErrFetchSuperseded.
type Session struct {
	id        string
	converter Converter
	recorder  ConversionRecorder
	now       func() time.Time

	mu        sync.Mutex
	machine   *stateless.StateMachine
	loading   bool
	showError bool
	errorKey  string
	amount    float64
	from      string
	to        string
	result    models.ConversionResult
	hasResult bool
	gen       uint64
}

func NewSession(id string, converter Converter, recorder ConversionRecorder) *Session {
	s := &Session{
		id:        id,
		converter: converter,
		recorder:  recorder,
		now:       time.Now,
		from:      models.DefaultFrom,
		to:        models.DefaultTo,
	}

	m := stateless.NewStateMachine(StateReady)
	m.Configure(StateReady).
		Permit(triggerFetch, StateLoading)
	m.Configure(StateLoading).
		OnEntry(func(context.Context, ...any) error { s.loading = true; return nil }).
		OnExit(func(context.Context, ...any) error { s.loading = false; return nil }).
		PermitReentry(triggerFetch).
		Permit(triggerSucceed, StateFinished).
		Permit(triggerFail, StateError)
	m.Configure(StateFinished).
		Permit(triggerFetch, StateLoading)
	m.Configure(StateError).
		Permit(triggerFetch, StateLoading).
		Permit(triggerDismiss, StateEmpty)
	m.Configure(StateEmpty).
		Permit(triggerFetch, StateLoading)
	s.machine = m

	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.MustState().(State)
}

// Refresh is the view-triggered fetch: it loads a new table and checks that
// the selected pair can be converted with it.
func (s *Session) Refresh(ctx context.Context) (models.RateTable, error) {
	s.mu.Lock()
	from, to := s.from, s.to
	s.mu.Unlock()

	table, gen, err := s.fetch(ctx)
	if err != nil {
		return models.RateTable{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return models.RateTable{}, models.ErrFetchSuperseded
	}
	if _, ok := table.Rate(from); !ok {
		s.setError(models.ErrRateUnavailable)
	} else if _, ok := table.Rate(to); !ok {
		s.setError(models.ErrRateUnavailable)
	}
	return table, nil
}

// Convert is the user-triggered flow: validate the amount, fetch a fresh
// table, convert.
func (s *Session) Convert(ctx context.Context, amountText, from, to string) (models.ConversionResult, error) {
	from, to = models.NormalizeCode(from), models.NormalizeCode(to)

	amount, err := ParseAmount(amountText)
	if err != nil {
		s.mu.Lock()
		s.setError(err)
		s.mu.Unlock()
		s.record(ctx, models.ConversionRequest{From: from, To: to}, models.ConversionResult{}, err)
		return models.ConversionResult{}, err
	}
	req := models.ConversionRequest{Amount: amount, From: from, To: to}

	s.mu.Lock()
	s.amount, s.from, s.to = amount, from, to
	s.mu.Unlock()

	table, gen, err := s.fetch(ctx)
	if errors.Is(err, models.ErrFetchSuperseded) {
		return models.ConversionResult{}, err
	}
	if err != nil {
		s.record(ctx, req, models.ConversionResult{}, err)
		return models.ConversionResult{}, err
	}

	res, err := s.converter.Convert(ctx, req, table)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return models.ConversionResult{}, models.ErrFetchSuperseded
	}
	if err != nil {
		s.setError(err)
	} else {
		s.result, s.hasResult = res, true
	}
	s.mu.Unlock()

	s.record(ctx, req, res, err)
	return res, err
}

// Dismiss acknowledges the displayed error. From the error state it moves the
// session to empty.
func (s *Session) Dismiss(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showError = false
	s.errorKey = ""
	if s.machine.MustState() == StateError {
		return s.machine.FireCtx(ctx, triggerDismiss)
	}
	return nil
}

// Snapshot renders the session with messages in lang.
func (s *Session) Snapshot(lang string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.converter.Current()
	snap := Snapshot{
		ID:           s.id,
		State:        s.machine.MustState().(State),
		Loading:      s.loading,
		ShowError:    s.showError,
		ErrorKey:     s.errorKey,
		ErrorMessage: i18n.Message(lang, s.errorKey),
		Amount:       s.amount,
		From:         s.from,
		To:           s.to,
		RatesBase:    table.Base,
		RatesDate:    table.Date,
	}
	if s.hasResult {
		snap.Result = s.result.Value
		snap.Formatted = s.result.Formatted()
	}
	return snap
}

func (s *Session) fetch(ctx context.Context) (models.RateTable, uint64, error) {
	s.mu.Lock()
	if err := s.machine.FireCtx(ctx, triggerFetch); err != nil {
		s.mu.Unlock()
		return models.RateTable{}, 0, err
	}
	s.gen++
	gen := s.gen
	s.showError = false
	s.errorKey = ""
	s.mu.Unlock()

	table, err := s.converter.FetchRates(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A superseded fetch leaves the state to the fetch that replaced it.
	if gen != s.gen || errors.Is(err, models.ErrFetchSuperseded) {
		return models.RateTable{}, gen, models.ErrFetchSuperseded
	}
	if err != nil {
		s.setError(err)
		if ferr := s.machine.FireCtx(context.WithoutCancel(ctx), triggerFail); ferr != nil {
			return models.RateTable{}, gen, errors.Join(err, ferr)
		}
		return models.RateTable{}, gen, err
	}
	if ferr := s.machine.FireCtx(context.WithoutCancel(ctx), triggerSucceed); ferr != nil {
		return models.RateTable{}, gen, ferr
	}
	return table, gen, nil
}

// setError must be called with s.mu held. The previous result no longer
// matches the selected pair, so it is dropped.
func (s *Session) setError(err error) {
	s.showError = true
	s.errorKey = models.ErrorKey(err)
	s.result, s.hasResult = models.ConversionResult{}, false
}

func (s *Session) record(ctx context.Context, req models.ConversionRequest, res models.ConversionResult, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordConversion(ctx, models.ConversionEvent{
		ClientID:  s.id,
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Result:    res.Value,
		OK:        err == nil,
		ErrorKey:  models.ErrorKey(err),
		CreatedAt: s.now().UTC(),
	})
}

type registryEntry struct {
	session  *Session
	lastUsed time.Time
}

// SessionRegistry keeps one Session per client id until it has been idle for
// longer than the sweep allows.
type SessionRegistry struct {
	newConverter func() Converter
	recorder     ConversionRecorder
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

func NewSessionRegistry(newConverter func() Converter, recorder ConversionRecorder) *SessionRegistry {
	return &SessionRegistry{
		newConverter: newConverter,
		recorder:     recorder,
		now:          time.Now,
		sessions:     map[string]*registryEntry{},
	}
}

// Get returns the session for id, creating it on first use.
func (r *SessionRegistry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		e = &registryEntry{session: NewSession(id, r.newConverter(), r.recorder)}
		r.sessions[id] = e
	}
	e.lastUsed = r.now()
	return e.session
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions not used for longer than idle and returns how many
// were removed. A request still holding an evicted session keeps working on it.
func (r *SessionRegistry) EvictIdle(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

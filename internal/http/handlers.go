package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	"github.com/fairyhunter13/vending-machine-simulator/internal/model"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/queue"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
	"github.com/fairyhunter13/vending-machine-simulator/internal/vending"
)

var (
	expCommands = expvar.NewMap("vending_commands")
	expFailures = expvar.NewMap("vending_failures")
)

// App carries the dependencies shared by the HTTP handlers.
type App struct {
	Cfg     config.Config
	Store   *store.Store
	Manager *queue.Manager
	closing atomic.Bool
	started time.Time

	mu       sync.Mutex
	commands map[model.Op]uint64
	failures map[model.Category]uint64
}

type ack struct {
	RequestID       string         `json:"request_id"`
	CommandSequence uint64         `json:"command_sequence"`
	Snapshot        model.Snapshot `json:"snapshot"`
}

type cashRequest struct {
	Amount int64          `json:"amount"`
	Kind   model.CashKind `json:"kind"`
}

type cardRequest struct {
	Kind model.CardKind `json:"kind"`
}

type messageRequest struct {
	Text     string         `json:"text"`
	Severity model.Severity `json:"severity"`
}

// NewApp wires an App around the store and the command manager.
func NewApp(cfg config.Config, st *store.Store, m *queue.Manager) *App {
	return &App{
		Cfg:      cfg,
		Store:    st,
		Manager:  m,
		started:  time.Now(),
		commands: make(map[model.Op]uint64),
		failures: make(map[model.Category]uint64),
	}
}

// StartShutdown makes command endpoints answer 503 and closes queue intake.
func (a *App) StartShutdown() {
	a.closing.Store(true)
	a.Manager.CloseIntake()
}

func (a *App) insertCashHandler(w http.ResponseWriter, r *http.Request) {
	var req cashRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.submit(w, r, model.Command{Op: model.OpInsertCash, Amount: req.Amount, CashKind: req.Kind})
}

func (a *App) insertCardHandler(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.submit(w, r, model.Command{Op: model.OpInsertCard, CardKind: req.Kind})
}

func (a *App) ejectCardHandler(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, model.Command{Op: model.OpEjectCard})
}

func (a *App) selectSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := slotParam(w, r)
	if !ok {
		return
	}
	a.submit(w, r, model.Command{Op: model.OpSelectSlot, SlotID: id})
}

func (a *App) returnChangeHandler(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, model.Command{Op: model.OpReturnChange})
}

func (a *App) collectItemHandler(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, model.Command{Op: model.OpCollectItem})
}

func (a *App) collectChangeHandler(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, model.Command{Op: model.OpCollectChange})
}

func (a *App) setMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a.submit(w, r, model.Command{Op: model.OpSetMessage, Text: req.Text, Severity: req.Severity})
}

// decodeBody enforces a JSON media type and strict decoding into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", "body must contain a single JSON object")
		return false
	}
	return true
}

func slotParam(w http.ResponseWriter, r *http.Request) (model.SlotID, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "slot id must be an integer")
		return 0, false
	}
	return model.SlotID(id), true
}

func (a *App) submit(w http.ResponseWriter, r *http.Request, cmd model.Command) {
	if a.closing.Load() || a.Manager.IsShuttingDown() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	if err := vending.Validate(cmd); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	snap, seq, err := a.Manager.Submit(r.Context(), cmd)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	a.count(cmd.Op, snap.Message)
	ac := ack{
		RequestID:       RequestIDFromContext(r.Context()),
		CommandSequence: seq,
		Snapshot:        snap,
	}
	writeJSON(w, http.StatusOK, ac)
	obs.Logger.Debug("command_acknowledged",
		"request_id", ac.RequestID,
		"op", cmd.Op,
		"command_sequence", seq,
		"message_sequence", snap.Message.Sequence,
	)
}

func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vending.ErrInvalidCommand), errors.Is(err, vending.ErrUnknownCommand):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, queue.ErrShuttingDown), errors.Is(err, queue.ErrStopped):
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
	case errors.Is(err, context.DeadlineExceeded):
		WriteJSONError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.Is(err, context.Canceled):
		WriteJSONError(w, http.StatusServiceUnavailable, "canceled", err.Error())
	default:
		obs.Logger.Error("submit failed", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func (a *App) count(op model.Op, msg model.StatusMessage) {
	expCommands.Add(string(op), 1)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commands[op]++
	if msg.Severity == model.SeverityError {
		cat := msg.Code.Category()
		a.failures[cat]++
		expFailures.Add(string(cat), 1)
	}
}

func (a *App) stateHandler(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.Store.Get()
	if !ok {
		WriteJSONError(w, http.StatusServiceUnavailable, "not_ready", "")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *App) listSlotsHandler(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.Store.Get()
	if !ok {
		WriteJSONError(w, http.StatusServiceUnavailable, "not_ready", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": snap.Slots})
}

func (a *App) getSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := slotParam(w, r)
	if !ok {
		return
	}
	slot, ok := a.Store.Slot(id)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

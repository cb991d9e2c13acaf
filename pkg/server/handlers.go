package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/matst80/listing-filters/pkg/common"
	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/persistance"
	"github.com/matst80/listing-filters/pkg/query"
	"github.com/matst80/listing-filters/pkg/storage"
	"github.com/matst80/listing-filters/pkg/tracking"
)

var (
	errNoHandoffStore     = errors.New("handoff store not configured")
	errNotAdvancedAction  = errors.New("not an advanced action")
	errChipNotFound       = errors.New("chip not found")
	errUnknownQuickFilter = errors.New("unknown quick filter")
)

func (ws *WebServer) session(r *http.Request) (string, *filter.Session, error) {
	id := r.PathValue("id")
	session, err := ws.Sessions.Get(id)
	if err != nil {
		return id, nil, common.NewHttpError(http.StatusNotFound, err)
	}
	return id, session, nil
}

func (ws *WebServer) view(id string, session *filter.Session) (*SessionView, error) {
	state, chips, quick := session.Snapshot()
	q, err := query.Encode(state, query.Page{}, "", "")
	if err != nil {
		return nil, err
	}
	return &SessionView{
		ID:           id,
		State:        persistance.FromState(state),
		Chips:        chips,
		QuickFilters: quick,
		Available:    session.Mapper().Labels(),
		Query:        q,
	}, nil
}

func (ws *WebServer) dispatch(id string, session *filter.Session, action filter.Action) {
	name := filter.ActionName(action)
	actionsDispatched.WithLabelValues(name).Inc()
	session.Dispatch(action)
	ws.Log.Debug("dispatched action", logger.Fields{"session": id, "action": name})
}

func (ws *WebServer) track(r *http.Request, id string, session *filter.Session, handoff bool) {
	state, chips, quick := session.Snapshot()
	q, err := query.Encode(state, query.Page{}, "", "")
	if err != nil {
		ws.Log.WithError(err).Warn("could not encode query for tracking", logger.Fields{"session": id})
		return
	}
	labels := make([]string, len(chips))
	for i, c := range chips {
		labels[i] = c.Label
	}
	ws.Tracking.TrackSearch(r.Context(), id, tracking.Search{
		Status:       string(state.Status),
		Query:        q,
		Chips:        labels,
		QuickFilters: quick,
		Handoff:      handoff,
	}, r)
}

// readOptionalJson decodes the body into v unless it is empty.
func readOptionalJson(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err = jsoncompat.Unmarshal(data, v); err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	return nil
}

func (ws *WebServer) CreateSession(w http.ResponseWriter, r *http.Request) (any, error) {
	req := CreateSessionRequest{}
	if err := readOptionalJson(r, &req); err != nil {
		return nil, err
	}
	status := ws.DefaultStatus
	if req.Status != "" {
		status = filter.Status(req.Status)
	}
	id, session := ws.Sessions.Create(status)
	activeSessions.Set(float64(ws.Sessions.Len()))
	ws.Tracking.TrackSession(r.Context(), id, r)
	w.WriteHeader(http.StatusCreated)
	return ws.view(id, session)
}

func (ws *WebServer) GetSession(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	return ws.view(id, session)
}

func (ws *WebServer) ClearFilters(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	ws.dispatch(id, session, filter.ResetAll{})
	return ws.view(id, session)
}

// DispatchAction runs one {type, payload} action. Unknown types leave the
// session untouched.
func (ws *WebServer) DispatchAction(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	rec := persistance.ActionRecord{}
	if err = common.DecodeJson(r, &rec); err != nil {
		return nil, err
	}
	action := persistance.ParseAction(rec)
	if action == nil {
		actionsIgnored.Inc()
		ws.Log.Info("ignored unknown action", logger.Fields{"session": id, "type": rec.Type})
		return ws.view(id, session)
	}
	ws.dispatch(id, session, action)
	return ws.view(id, session)
}

// ApplyAdvanced edits the advanced block as one draft and merges it when
// something changed.
func (ws *WebServer) ApplyAdvanced(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	req := AdvancedRequest{}
	if err = common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	draft := session.OpenDraft()
	for i, rec := range req.Actions {
		adv, ok := persistance.ParseAction(rec).(filter.Advanced)
		if !ok {
			return nil, common.NewHttpError(http.StatusBadRequest, fmt.Errorf("action %d (%s): %w", i, rec.Type, errNotAdvancedAction))
		}
		draft.Dispatch(adv.Action)
	}
	if draft.Dirty() {
		actionsDispatched.WithLabelValues("merge-advanced").Inc()
		session.Apply(draft)
		ws.track(r, id, session, false)
	}
	return ws.view(id, session)
}

func (ws *WebServer) ToggleQuick(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	label := r.PathValue("label")
	if !session.Mapper().Known(label) {
		return nil, common.NewHttpError(http.StatusNotFound, fmt.Errorf("%q: %w", label, errUnknownQuickFilter))
	}
	ws.dispatch(id, session, filter.ToggleQuickFilter{Label: label})
	ws.track(r, id, session, false)
	return ws.view(id, session)
}

func (ws *WebServer) RemoveChip(w http.ResponseWriter, r *http.Request) (any, error) {
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	key := r.PathValue("key")
	chip, ok := filter.FindChip(session.Chips(), key)
	if !ok {
		return nil, common.NewHttpError(http.StatusNotFound, fmt.Errorf("%q: %w", key, errChipNotFound))
	}
	ws.dispatch(id, session, chip.OnRemove)
	return ws.view(id, session)
}

func (ws *WebServer) SaveHandoff(w http.ResponseWriter, r *http.Request) (any, error) {
	if ws.Handoff == nil {
		return nil, common.NewHttpError(http.StatusServiceUnavailable, errNoHandoffStore)
	}
	id, session, err := ws.session(r)
	if err != nil {
		return nil, err
	}
	token, err := ws.Handoff.Save(r.Context(), session.State())
	if err != nil {
		return nil, common.NewHttpError(http.StatusBadGateway, err)
	}
	handoffsSaved.Inc()
	ws.track(r, id, session, true)
	w.WriteHeader(http.StatusCreated)
	return HandoffResponse{Token: token}, nil
}

// LoadHandoff starts a new session from a handed over state.
func (ws *WebServer) LoadHandoff(w http.ResponseWriter, r *http.Request) (any, error) {
	if ws.Handoff == nil {
		return nil, common.NewHttpError(http.StatusServiceUnavailable, errNoHandoffStore)
	}
	state, err := ws.Handoff.Load(r.Context(), r.PathValue("token"), ws.DefaultStatus)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		handoffsLoaded.WithLabelValues("missing").Inc()
		return nil, common.NewHttpError(http.StatusNotFound, err)
	case errors.Is(err, persistance.ErrInvalidDocument):
		handoffsLoaded.WithLabelValues("invalid").Inc()
		ws.Log.WithError(err).Warn("stored handoff is not a filter document", nil)
	case err != nil:
		handoffsLoaded.WithLabelValues("error").Inc()
		return nil, common.NewHttpError(http.StatusBadGateway, err)
	default:
		handoffsLoaded.WithLabelValues("found").Inc()
	}
	id, session := ws.Sessions.Create(state.Status)
	session.Restore(state)
	activeSessions.Set(float64(ws.Sessions.Len()))
	return ws.view(id, session)
}

// NormalizeQuery reads a search query string and answers with its
// normalized form.
func (ws *WebServer) NormalizeQuery(w http.ResponseWriter, r *http.Request) (any, error) {
	sr, state, err := query.FromRequest(r, ws.DefaultStatus)
	if err != nil {
		return nil, common.NewHttpError(http.StatusBadRequest, err)
	}
	q, err := query.Encode(state, query.Page{Number: sr.Page, Size: sr.PageSize}, sr.Sort, sr.Query)
	if err != nil {
		return nil, err
	}
	queriesParsed.Inc()
	return QueryResponse{
		Query: q,
		State: persistance.FromState(state),
		Chips: filter.NewSummarizer(filter.DefaultState(ws.DefaultStatus)).Summarize(state, nil),
	}, nil
}

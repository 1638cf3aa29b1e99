// Package server exposes the Calendar Round operations as a read-only JSON
// API over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"

	"cloudeng.io/logging/ctxlog"
	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/cr"
	"github.com/tartampluch/go-calendar-round/internal/locale"
)

// CalendarServer answers Calendar Round queries over HTTP.
type CalendarServer struct {
	// translator is read on every request and swapped rarely.
	translator atomic.Pointer[locale.Translator]
	catalog    *locale.Catalog
	Port       string
}

// NewCalendarServer returns a server rendering names in lang unless a
// request asks for another language.
func NewCalendarServer(port string, catalog *locale.Catalog, lang string) (*CalendarServer, error) {
	s := &CalendarServer{Port: port, catalog: catalog}
	if err := s.SetLanguage(lang); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLanguage atomically replaces the default translator.
func (s *CalendarServer) SetLanguage(lang string) error {
	tr, err := s.catalog.Translator(lang)
	if err != nil {
		return err
	}
	s.translator.Store(tr)
	slog.Debug(config.MsgLangSwitched,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyLang, tr.Lang(),
	)
	return nil
}

// Handler returns the routes of the API.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteNext, s.readOnly(s.handleNext))
	mux.HandleFunc(config.RouteShift, s.readOnly(s.handleShift))
	mux.HandleFunc(config.RouteMatch, s.readOnly(s.handleMatch))
	mux.HandleFunc(config.RouteSearch, s.readOnly(s.handleSearch))
	mux.HandleFunc(config.RouteValidate, s.readOnly(s.handleValidate))
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
		// Requests inherit the logger attached to ctx.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	log := ctxlog.Logger(ctx).With(config.LogKeyComponent, config.CompServer)
	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		log.Info(config.MsgServerListen, config.LogKeyPort, s.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(config.MsgServerStop)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// -----------------------------------------------------------------------------
// Response Types
// -----------------------------------------------------------------------------

// DateView is the JSON form of a Calendar Round.
type DateView struct {
	Text      string `json:"text"`
	Localized string `json:"localized"`
	Partial   bool   `json:"partial"`
}

type nextResponse struct {
	Date DateView `json:"date"`
	Next DateView `json:"next"`
}

type shiftResponse struct {
	Date   DateView `json:"date"`
	Days   int      `json:"days"`
	Result DateView `json:"result"`
}

type matchResponse struct {
	A     DateView `json:"a"`
	B     DateView `json:"b"`
	Equal bool     `json:"equal"`
	Match bool     `json:"match"`
	Label string   `json:"label"`
}

type searchResponse struct {
	Pattern DateView   `json:"pattern"`
	From    DateView   `json:"from"`
	Count   int        `json:"count"`
	Matches []DateView `json:"matches"`
}

type validateResponse struct {
	Date     DateView `json:"date"`
	Valid    bool     `json:"valid"`
	Label    string   `json:"label"`
	Error    string   `json:"error,omitempty"`
	Position *int     `json:"position,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

func (s *CalendarServer) handleNext(w http.ResponseWriter, r *http.Request, tr *locale.Translator) {
	date, ok := parseDate(w, r, config.ParamDate)
	if !ok {
		return
	}
	writeJSON(w, r, nextResponse{
		Date: view(tr, date),
		Next: view(tr, date.Next()),
	})
}

func (s *CalendarServer) handleShift(w http.ResponseWriter, r *http.Request, tr *locale.Translator) {
	date, ok := parseDate(w, r, config.ParamDate)
	if !ok {
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get(config.ParamDays))
	if err != nil {
		badRequest(w, r, fmt.Errorf("%s: %w", config.ErrDaysParse, err))
		return
	}
	writeJSON(w, r, shiftResponse{
		Date:   view(tr, date),
		Days:   days,
		Result: view(tr, date.Shift(days)),
	})
}

func (s *CalendarServer) handleMatch(w http.ResponseWriter, r *http.Request, tr *locale.Translator) {
	a, ok := parseDate(w, r, config.ParamA)
	if !ok {
		return
	}
	b, ok := parseDate(w, r, config.ParamB)
	if !ok {
		return
	}
	match := a.Match(b)
	label := tr.Msg(config.TKeyLblNo)
	if match {
		label = tr.Msg(config.TKeyLblYes)
	}
	writeJSON(w, r, matchResponse{
		A:     view(tr, a),
		B:     view(tr, b),
		Equal: a.Equal(b),
		Match: match,
		Label: label,
	})
}

func (s *CalendarServer) handleSearch(w http.ResponseWriter, r *http.Request, tr *locale.Translator) {
	pattern, ok := parseDate(w, r, config.ParamPattern)
	if !ok {
		return
	}
	q := r.URL.Query()

	from := cr.Epoch
	if q.Has(config.ParamFrom) {
		if from, ok = parseDate(w, r, config.ParamFrom); !ok {
			return
		}
	}

	limit := config.DefaultSearchLimit
	if v := q.Get(config.ParamLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, r, fmt.Errorf("%s: %q", config.ErrLimitParse, v))
			return
		}
		limit = min(n, config.MaxSearchLimit)
	}

	found, err := cr.Search(r.Context(), from, pattern, limit)
	switch {
	case errors.Is(err, cr.ErrWildcard):
		badRequest(w, r, err)
		return
	case err != nil:
		internalError(w, r, err)
		return
	}

	resp := searchResponse{
		Pattern: view(tr, pattern),
		From:    view(tr, from),
		Count:   len(found),
		Matches: make([]DateView, len(found)),
	}
	for i, c := range found {
		resp.Matches[i] = view(tr, c)
	}
	writeJSON(w, r, resp)
}

func (s *CalendarServer) handleValidate(w http.ResponseWriter, r *http.Request, tr *locale.Translator) {
	date, ok := parseDate(w, r, config.ParamDate)
	if !ok {
		return
	}
	resp := validateResponse{Date: view(tr, date), Valid: true, Label: tr.Msg(config.TKeyLblValid)}
	if err := date.Validate(); err != nil {
		resp.Valid = false
		resp.Label = tr.Msg(config.TKeyLblInvalid)
		resp.Error = err.Error()
	} else if pos, err := date.Position(); err == nil {
		resp.Position = &pos
	}
	writeJSON(w, r, resp)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

type handlerFunc func(http.ResponseWriter, *http.Request, *locale.Translator)

// readOnly rejects methods other than GET and HEAD and resolves the
// translator for the request.
func (s *CalendarServer) readOnly(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}
		tr := s.translator.Load()
		if lang := r.URL.Query().Get(config.ParamLang); lang != "" {
			var err error
			if tr, err = s.catalog.Translator(lang); err != nil {
				badRequest(w, r, err)
				return
			}
		}
		h(w, r, tr)
	}
}

func view(tr *locale.Translator, c cr.CalendarRound) DateView {
	return DateView{
		Text:      c.String(),
		Localized: tr.Render(c),
		Partial:   c.IsPartial(),
	}
}

func parseDate(w http.ResponseWriter, r *http.Request, param string) (cr.CalendarRound, bool) {
	c, err := cr.Parse(r.URL.Query().Get(param))
	if err != nil {
		badRequest(w, r, fmt.Errorf("%s %q: %w", config.ErrDateParse, param, err))
		return cr.CalendarRound{}, false
	}
	return c, true
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.Logger(r.Context()).Debug(config.MsgBadRequest,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, r.URL.Path,
		config.LogKeyError, err,
	)
	writeStatus(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.Logger(r.Context()).Error(config.HTTPMsgInternalErr,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, r.URL.Path,
		config.LogKeyError, err,
	)
	writeStatus(w, r, http.StatusInternalServerError, errorResponse{Error: config.HTTPMsgInternalErr})
}

// writeJSON sends v with an ETag derived from the body. Responses depend only
// on the query, so they are cacheable.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		internalError(w, r, fmt.Errorf("%s: %w", config.ErrEncodeResp, err))
		return
	}
	hash := sha256.Sum256(body)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeJSON)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPublic)
	h.Set(config.HeaderETag, etag)

	if r.Header.Get(config.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeBody(w, r, http.StatusOK, body)
}

func writeStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	writeBody(w, r, status, body)
}

func writeBody(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctxlog.Logger(r.Context()).Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

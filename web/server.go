/*
 * server.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package web is the browser front end of goStoich: one HTML form per
// calculation, a JSON endpoint, composition charts and Prometheus metrics.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/stoichjson"
	"github.com/rmera/gostoich/stoichplot"
	"gonum.org/v1/plot/vg"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxBodyBytes = 64 << 10

// Server is the goStoich web application. It owns the http.Server and
// the state its handlers share.
type Server struct {
	cfg        Config
	log        *slog.Logger
	httpServer *http.Server
	mux        *http.ServeMux
	limiter    *clientLimiter
	metrics    *metrics
	pages      *template.Template
	now        func() time.Time
}

type pageData struct {
	Title    string
	Menu     []operation
	Op       operation
	Values   map[string]string
	Kind     string
	N        int
	MaxRows  int
	Rows     []massRow
	Success  []string
	Info     string
	Error    string
	ChartURL string
	Elements []stoich.Element
}

// NewServer builds a server from cfg. A nil logger means slog.Default().
func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		mux:     http.NewServeMux(),
		limiter: newClientLimiter(cfg.RateRPS, cfg.RateBurst, cfg.RateIdleTTL),
		pages:   pages,
		now:     time.Now,
	}
	s.metrics = newMetrics(s.limiter)
	s.handle("GET /{$}", "index", true, s.handleIndex)
	s.handle("GET /calc/{op}", "form", true, s.handleForm)
	s.handle("POST /calc/{op}", "calc", true, s.handleSubmit)
	s.handle("POST /api/calc", "api", true, s.handleAPI)
	s.handle("GET /chart/{file}", "chart", true, s.handleChart)
	s.handle("GET /elements", "elements", true, s.handleElements)
	s.handle("GET /healthz", "healthz", false, s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.handler())
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s, nil
}

// Handler returns the HTTP handler of the server, for tests or embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	default:
	}
	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()
	s.log.Info("gostoich web server listening", "addr", s.cfg.Addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// handle registers h under pattern, with latency metrics, logging and, if
// limited, the per-client rate limiter.
func (s *Server) handle(pattern, route string, limited bool, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		allowed, wait := true, time.Duration(0)
		if limited {
			allowed, wait = s.limiter.Allow(clientKey(r), start)
		}
		if allowed {
			h(rec, r)
		} else {
			s.metrics.rateLimited.Inc()
			rec.Header().Set("Retry-After", strconv.Itoa(int(wait/time.Second)))
			http.Error(rec, "too many requests, slow down", http.StatusTooManyRequests)
		}
		s.metrics.observe(route, rec.code, start)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "route", route, "code", rec.code, "elapsed", time.Since(start))
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) newPage(title string) *pageData {
	return &pageData{Title: title, Menu: menu, Values: map[string]string{}, MaxRows: maxRows}
}

func (s *Server) render(w http.ResponseWriter, code int, data *pageData) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "page", data); err != nil {
		s.log.Error("rendering page", "title", data.Title, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// calculate runs req and counts the outcome.
func (s *Server) calculate(req *stoichjson.Request) (*stoichjson.Info, *stoichjson.Error) {
	info, jerr := stoichjson.Process(req)
	switch {
	case jerr == nil:
		s.metrics.calculation(req.Operation, "ok")
	case jerr.InOptions:
		s.metrics.calculation(req.Operation, "rejected")
	default:
		s.metrics.calculation(req.Operation, "error")
		s.log.Debug("calculation failed", "operation", req.Operation, "err", jerr.Message, "trace", strings.Join(jerr.Decorate(""), " < "))
	}
	return info, jerr
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.newPage("Chemistry calculator"))
}

func (s *Server) formPage(op operation, form url.Values) *pageData {
	data := s.newPage(op.Title)
	data.Op = op
	data.Values = formValues(form)
	data.Kind = form.Get("kind")
	if op.Key == "empirical" {
		data.N = rowCount(form)
		data.Rows = massRows(form, data.N)
	}
	return data
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	op, ok := lookupOperation(r.PathValue("op"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.render(w, http.StatusOK, s.formPage(op, r.URL.Query()))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	op, ok := lookupOperation(r.PathValue("op"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	data := s.formPage(op, r.PostForm)
	req, err := formRequest(op.Key, r.PostForm)
	if err != nil {
		data.Error = err.Error()
		s.render(w, http.StatusUnprocessableEntity, data)
		return
	}
	info, jerr := s.calculate(req)
	if jerr != nil {
		data.Error = jerr.Message
		s.render(w, http.StatusUnprocessableEntity, data)
		return
	}
	data.Success = info.Text
	switch req.Operation {
	case stoichjson.OpPercentComposition:
		if len(info.Percents) > 0 {
			data.ChartURL = "/chart/composition.png?formula=" + url.QueryEscape(req.Formula)
		}
	case stoichjson.OpEmpirical:
		if !info.HasMolecular {
			data.Success = info.Text[:1]
			data.Info = stoich.MolecularInfo
		}
	}
	s.render(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, stoichjson.NewError("options", "handleAPI", err))
		return
	}
	req, jerr := stoichjson.UnmarshalRequest(body)
	if jerr != nil {
		writeJSON(w, http.StatusBadRequest, jerr)
		return
	}
	info, jerr := s.calculate(req)
	switch {
	case jerr == nil:
		writeJSON(w, http.StatusOK, info)
	case jerr.InOptions:
		writeJSON(w, http.StatusBadRequest, jerr)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, jerr)
	}
}

var chartTypes = map[string]string{
	"composition.png": "image/png",
	"composition.svg": "image/svg+xml",
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ctype, ok := chartTypes[file]
	if !ok {
		http.NotFound(w, r)
		return
	}
	formula := strings.TrimSpace(r.URL.Query().Get("formula"))
	format := strings.TrimPrefix(file[strings.LastIndex(file, "."):], ".")
	width := vg.Length(s.cfg.ChartWidthCm) * vg.Centimeter
	height := vg.Length(s.cfg.ChartHeightCm) * vg.Centimeter
	var buf bytes.Buffer
	err := stoichplot.FormulaChart(&buf, formula, format, width, height)
	switch {
	case err == nil:
	case errors.Is(err, stoichplot.ErrNoData):
		http.Error(w, "empty formula", http.StatusUnprocessableEntity)
		return
	case errors.As(err, new(stoich.Error)):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	default:
		s.log.Error("rendering chart", "formula", formula, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ctype)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	data := s.newPage("Element table")
	data.Op = operation{Key: "elements"}
	data.Elements = stoich.Elements()
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

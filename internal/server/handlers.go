package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	"github.com/KaramelBytes/resultscope/internal/chart"
	"github.com/KaramelBytes/resultscope/internal/history"
	"github.com/KaramelBytes/resultscope/internal/parser"
)

var errMissingFile = errors.New("missing multipart field \"file\"")

type analyzeResponse struct {
	Upload   *history.Entry     `json:"upload,omitempty"`
	Analysis *analysis.Analysis `json:"analysis"`
	Insights analysis.Insights  `json:"insights"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	name, grid, err := s.readGrid(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := analysis.Analyze(grid, s.cfg.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := analyzeResponse{
		Analysis: a.FilterBand(r.URL.Query().Get("band")),
		Insights: analysis.Preview(grid, s.cfg.Options.PreviewRows),
	}
	if s.cfg.History != nil && a.RowCount > 0 {
		e, err := s.cfg.History.Append(r.Context(), history.Entry{FileName: name, RowCount: a.RowCount})
		if err != nil {
			// the analysis itself succeeded
			log.Warn().Err(err).Str("file", name).Msg("record upload history")
		} else {
			resp.Upload = &e
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	_, grid, err := s.readGrid(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit := s.cfg.Options.PreviewRows
	if v := r.URL.Query().Get("rows"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, analysis.Preview(grid, limit))
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	_, grid, err := s.readGrid(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := analysis.Analyze(grid, s.cfg.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := chart.PassRates(a.FilterBand(r.URL.Query().Get("band")))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	if s.cfg.History == nil {
		writeJSON(w, http.StatusOK, []history.Entry{})
		return
	}
	entries, err := s.cfg.History.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// readGrid pulls the uploaded file from the multipart form and parses it.
func (s *Server) readGrid(w http.ResponseWriter, r *http.Request) (string, analysis.Grid, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", errMissingFile, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, errMissingFile
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	opt := parser.Options{SheetName: strings.TrimSpace(r.FormValue("sheet"))}
	if v := r.FormValue("sheetIndex"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opt.SheetIndex = n
		}
	}
	grid, err := parser.ParseBytes(header.Filename, content, opt)
	if err != nil {
		return header.Filename, nil, err
	}
	return header.Filename, grid, nil
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errMissingFile),
		errors.Is(err, parser.ErrUnsupported),
		errors.Is(err, parser.ErrSheet),
		errors.Is(err, parser.ErrDecode),
		errors.Is(err, analysis.ErrNoRows),
		errors.Is(err, chart.ErrNoData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

package server

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/MuhamedUsman/provlens/internal/bgtask"
	"github.com/MuhamedUsman/provlens/internal/csvio"
	"github.com/MuhamedUsman/provlens/internal/domain"
)

func (s *Server) uploadPageHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.render(w, http.StatusOK, "upload", nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c := s.activeCleans
	s.mu.Unlock()
	env := envelop{"status": "available", "activeCleans": c}
	if err := s.writeJSON(w, env, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// cleanHandler is the form-submission boundary: one multipart POST carrying
// the CSV under the "file" field plus the option checkboxes. It responds
// with the results page, or a JSON report when the client asks for JSON.
func (s *Server) cleanHandler(w http.ResponseWriter, r *http.Request) {
	done := s.trackClean()
	defer done()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.invalidInputResponse(w, r, fmt.Errorf("parsing upload form: %v", err))
		return
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		s.invalidInputResponse(w, r, fmt.Errorf("no file uploaded"))
		return
	}
	defer f.Close()

	if ext := strings.ToLower(filepath.Ext(hdr.Filename)); ext != ".csv" {
		s.invalidInputResponse(w, r, fmt.Errorf("unsupported file type %q, upload a .csv file", ext))
		return
	}

	records, err := csvio.ReadProviders(f)
	if err != nil {
		s.invalidInputResponse(w, r, fmt.Errorf("reading %q: %v", hdr.Filename, err))
		return
	}

	report, err := s.clean(r, hdr.Filename, records, optionsFromForm(r.Form))
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		if err = s.writeJSON(w, envelop{"report": report}, http.StatusOK, nil); err != nil {
			s.serverErrorResponse(w, r, err)
		}
		return
	}
	if err = s.render(w, http.StatusOK, "results", report); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// clean fans the records out over a bounded worker pool, keeping results
// aligned with their input rows.
func (s *Server) clean(r *http.Request, filename string, records []domain.ProviderRecord, opts domain.CleanOptions) (domain.CleanReport, error) {
	start := time.Now()
	reports := make([]domain.RecordReport, len(records))

	wp := bgtask.NewWorkerPool(r.Context(), s.workers)
	for i, rec := range records {
		wp.Spawn(func() error {
			res, err := s.cleaner.Clean(wp.Ctx, rec, opts)
			if err != nil {
				return fmt.Errorf("cleaning record %d: %w", i+1, err)
			}
			reports[i] = domain.RecordReport{Record: rec, Result: res}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return domain.CleanReport{}, err
	}

	report := domain.CleanReport{
		Filename: filename,
		Records:  reports,
		Elapsed:  time.Since(start),
	}
	report.Summarize()
	return report, nil
}

func optionsFromForm(form url.Values) domain.CleanOptions {
	checked := func(k string) bool {
		v := form.Get(k)
		return v == "on" || v == "true" || v == "1"
	}
	return domain.CleanOptions{
		FixAddresses:         checked("fix_addresses"),
		NormalizePhones:      checked("normalize_phones"),
		StandardizeSpecialty: checked("standardize_specialty"),
		FlagSuspiciousFields: checked("flag_suspicious_fields"),
	}
}

// stopHandler handles HTTP requests to stop the server.
// Only works when the server is stoppable and not busy cleaning an upload.
func (s *Server) stopHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c := s.activeCleans
	s.mu.Unlock()
	if s.Stoppable && c == 0 {
		s.StopCancel()
		msg := "Shutdown initiated, it may take a maximum of 10 seconds to shutdown the server."
		if err := s.writeJSON(w, envelop{"status": msg}, http.StatusAccepted, nil); err != nil {
			s.serverErrorResponse(w, r, err)
		}
		return
	}
	if !s.Stoppable {
		s.notStoppableResponse(w, r)
		return
	}
	s.notIdleResponse(w, r)
}

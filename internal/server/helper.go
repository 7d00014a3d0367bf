package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type envelop map[string]any

func (*Server) writeJSON(w http.ResponseWriter, data envelop, status int, headers http.Header) error {
	jsonBytes, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	for k, v := range headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonBytes)
	return nil
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) error {
	ts := getTemplate()
	if ts.Lookup(page) == nil {
		return fmt.Errorf("template doesnot exist %q", page)
	}
	// render to a buffer first so a mid-render failure doesn't leak a
	// half-written page with a 200 status
	b := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(b, page, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

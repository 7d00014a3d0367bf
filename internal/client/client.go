// Package client talks to a provlens clean server, found either through a
// configured address or through mDNS discovery on the local network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MuhamedUsman/provlens/internal/config"
	"github.com/MuhamedUsman/provlens/internal/domain"
	"github.com/MuhamedUsman/provlens/internal/mdns"
)

const lookupTimeout = 3 * time.Second

type Client struct {
	http *http.Client
	// addr is the base URL of the server, empty until resolved
	addr     string
	instance string
}

func New(cfg config.Config) *Client {
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		addr:     cfg.Client.ServerAddr,
		instance: cfg.Client.Instance,
	}
}

// resolve returns the server's base URL, performing an mDNS lookup when no
// address is configured. The resolved address is cached for later calls.
func (c *Client) resolve(ctx context.Context) (string, error) {
	if c.addr != "" {
		return c.addr, nil
	}
	hostPort, err := mdns.Lookup(ctx, c.instance, lookupTimeout)
	if err != nil {
		return "", fmt.Errorf("looking up instance %q: %v", c.instance, err)
	}
	c.addr = "http://" + hostPort
	return c.addr, nil
}

// Clean uploads the CSV at path along with the option checkboxes and
// returns the server's report. The round trip covers the whole cleaning
// run, so it is bounded by the configured timeout rather than a default.
func (c *Client) Clean(ctx context.Context, path string, opts domain.CleanOptions) (domain.CleanReport, error) {
	var report domain.CleanReport

	addr, err := c.resolve(ctx)
	if err != nil {
		return report, err
	}

	f, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("opening %q: %v", path, err)
	}
	defer f.Close()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return report, fmt.Errorf("creating upload form: %v", err)
	}
	if _, err = io.Copy(fw, f); err != nil {
		return report, fmt.Errorf("reading %q: %v", path, err)
	}
	writeOptions(mw, opts)
	if err = mw.Close(); err != nil {
		return report, fmt.Errorf("finalizing upload form: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/clean", body)
	if err != nil {
		return report, fmt.Errorf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	var urlErr *url.Error
	if err != nil {
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return report, fmt.Errorf("uploading file: request timed out")
		}
		return report, fmt.Errorf("uploading file: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return report, fmt.Errorf("reading clean response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return report, fmt.Errorf("server refused the upload: %s", errorsFromEnvelope(b, resp.StatusCode))
	}

	var r struct {
		Report domain.CleanReport `json:"report"`
	}
	if err = json.Unmarshal(b, &r); err != nil {
		return report, fmt.Errorf("parsing clean report JSON: %v", err)
	}
	return r.Report, nil
}

// StopServer asks the server to shut down. Returns the HTTP status code so
// callers can distinguish refusal (not stoppable, busy) from acceptance.
func (c *Client) StopServer(ctx context.Context) (int, error) {
	addr, err := c.resolve(ctx)
	if err != nil {
		return -1, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/stop", nil)
	if err != nil {
		return -1, fmt.Errorf("creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return -1, fmt.Errorf("stopping server: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func writeOptions(mw *multipart.Writer, opts domain.CleanOptions) {
	set := func(k string, v bool) {
		_ = mw.WriteField(k, strconv.FormatBool(v))
	}
	set("fix_addresses", opts.FixAddresses)
	set("normalize_phones", opts.NormalizePhones)
	set("standardize_specialty", opts.StandardizeSpecialty)
	set("flag_suspicious_fields", opts.FlagSuspiciousFields)
}

func errorsFromEnvelope(b []byte, status int) string {
	var env struct {
		Errors string `json:"errors"`
	}
	if err := json.Unmarshal(b, &env); err != nil || env.Errors == "" {
		return fmt.Sprintf("status %d", status)
	}
	return env.Errors
}

package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound indicates the hub does not have the requested file.
var ErrNotFound = errors.New("file not found on hub")

// Client downloads dataset files from a Hugging Face compatible hub.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a hub client. Token may be empty for public datasets.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			// Group tarballs run to several GB; no overall timeout, the
			// context bounds the request instead.
			Timeout: 0,
		},
	}
}

// DownloadFile streams one dataset file to destPath, writing through a .part
// file that is renamed only on success, so an interrupted run never leaves a
// truncated tarball behind. Existing destinations are kept as-is. progress
// may be nil; total is -1 when the hub does not announce a length.
func (c *Client) DownloadFile(ctx context.Context, repoID, remotePath, destPath string, progress func(done, total int64)) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}

	u := fmt.Sprintf("%s/datasets/%s/resolve/main/%s", c.endpoint, repoID, remotePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, remotePath)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetch %s: unexpected status %s", remotePath, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	part := destPath + ".part"
	out, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create %s: %w", part, err)
	}

	var w io.Writer = out
	var pw *progressWriter
	if progress != nil {
		pw = &progressWriter{w: out, total: resp.ContentLength, report: progress}
		w = pw
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		out.Close()
		os.Remove(part)
		return fmt.Errorf("download %s: %w", remotePath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(part)
		return fmt.Errorf("close %s: %w", part, err)
	}
	if pw != nil {
		progress(pw.done, pw.total)
	}

	if err := os.Rename(part, destPath); err != nil {
		return fmt.Errorf("finalize %s: %w", destPath, err)
	}
	return nil
}

// progressWriter reports cumulative bytes written, throttled so a fast
// download does not flood the UI.
type progressWriter struct {
	w      io.Writer
	done   int64
	total  int64
	last   time.Time
	report func(done, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	if now := time.Now(); now.Sub(p.last) >= 100*time.Millisecond || err != nil {
		p.last = now
		p.report(p.done, p.total)
	}
	return n, err
}

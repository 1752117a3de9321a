package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/3-lines-studio/prerender/internal/core"
)

const SocketEnv = "PRERENDER_SOCKET"

// Renderer talks to an SSR render server over HTTP, either one it spawned
// itself on a unix socket or one already listening at a base URL.
type Renderer struct {
	cmd     *exec.Cmd
	socket  string
	baseURL string
	client  *http.Client
}

type SpawnOptions struct {
	Dir         string
	Stdout      io.Writer
	Stderr      io.Writer
	StartupWait time.Duration
}

// NewRenderer starts command with PRERENDER_SOCKET set and waits for the
// server to create the socket.
func NewRenderer(command []string, opts SpawnOptions) (*Renderer, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("missing render server command")
	}
	if opts.StartupWait <= 0 {
		opts.StartupWait = 5 * time.Second
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	socket := filepath.Join(os.TempDir(), fmt.Sprintf("prerender-%d.sock", os.Getpid()))
	_ = os.Remove(socket)

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), SocketEnv+"="+socket)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start render server: %w", err)
	}

	if err := waitForSocket(socket, opts.StartupWait); err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socket)
		},
	}

	return &Renderer{
		cmd:     cmd,
		socket:  socket,
		baseURL: "http://localhost",
		client:  &http.Client{Transport: transport},
	}, nil
}

// NewHTTPRenderer uses a render server that is already running.
func NewHTTPRenderer(baseURL string, client *http.Client) *Renderer {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Renderer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (r *Renderer) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}
	err := r.cmd.Process.Kill()
	_ = r.cmd.Wait()
	_ = os.Remove(r.socket)
	return err
}

func (r *Renderer) Render(ctx context.Context, route string, rc core.RenderContext) (string, error) {
	reqBody := map[string]any{
		"route":   route,
		"context": rc,
	}

	var result struct {
		HTML  string `json:"html"`
		Error *struct {
			Message string `json:"message"`
			Stack   string `json:"stack"`
		} `json:"error"`
	}

	status, err := r.postJSON(ctx, "/render", reqBody, &result)
	if err != nil {
		return "", err
	}

	if result.Error != nil {
		var sb strings.Builder
		sb.WriteString(result.Error.Message)
		if result.Error.Stack != "" {
			fmt.Fprintf(&sb, "\n\nStack:\n%s", result.Error.Stack)
		}
		return "", fmt.Errorf("%s", sb.String())
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("render server returned %d %s", status, http.StatusText(status))
	}

	return result.HTML, nil
}

// postJSON decodes the response into result and returns its status code. A
// non-200 response whose body is not JSON is an error here; the caller
// decides about non-200 responses that did decode.
func (r *Renderer) postJSON(ctx context.Context, endpoint string, body any, result any) (int, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, fmt.Errorf("render server returned %s", resp.Status)
		}
		return resp.StatusCode, fmt.Errorf("failed to decode render response: %w", err)
	}

	return resp.StatusCode, nil
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for render server socket at %s", path)
}

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/reload"
	"github.com/doodlesbykumbi/relaydb/pkg/server"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// portCounter is used to allocate unique ports for each binary server
var portCounter int32 = 19000

// ServerConfig holds the realm defaults of a test relay.
type ServerConfig struct {
	Kind     store.Kind
	Location string
	Defaults realm.Options
}

// ServerInstance is a running status server for a single scenario.
type ServerInstance struct {
	ServerURL string
	// Reloader is nil in binary mode.
	Reloader *reload.Reloader

	cancel        context.CancelFunc
	done          chan struct{}
	httpServer    *httptest.Server
	serverProcess *exec.Cmd
}

// StartServer starts a relay status server on the database in cfg.
// It returns once the startup reload has run.
func StartServer(tc *TestContext, cfg ServerConfig) (*ServerInstance, error) {
	var inst *ServerInstance
	var err error
	if tc.InlineMode {
		inst, err = startInlineServerInstance(cfg)
	} else {
		inst, err = startBinaryServerInstance(tc.BinaryPath, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := waitForStartupReload(inst.ServerURL, 30*time.Second); err != nil {
		inst.Stop()
		return nil, err
	}
	return inst, nil
}

func startInlineServerInstance(cfg ServerConfig) (*ServerInstance, error) {
	d, err := db.Open(db.Config{Kind: cfg.Kind, Location: cfg.Location, Hash: model.HashSHA1})
	if err != nil {
		return nil, err
	}
	reloader := reload.New(d, realm.NewTable(cfg.Defaults))
	s := server.NewServer(d, reloader, "", io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = reloader.Run(ctx)
	}()

	httpServer := httptest.NewServer(s.Router)
	return &ServerInstance{
		ServerURL:  httpServer.URL,
		Reloader:   reloader,
		cancel:     cancel,
		done:       done,
		httpServer: httpServer,
	}, nil
}

func startBinaryServerInstance(binaryPath string, cfg ServerConfig) (*ServerInstance, error) {
	port := int(atomic.AddInt32(&portCounter, 1))
	address := net.JoinHostPort("127.0.0.1", fmt.Sprint(port))

	configDir, err := os.MkdirTemp("", "relaydb-config-")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--status-address", address, "--no-watch")
	cmd.Env = append(os.Environ(),
		"RELAYDB_CONFIG_PATH="+configDir,
		"RELAYDB_USERDB_TYPE="+cfg.Kind.String(),
		"RELAYDB_USERDB="+cfg.Location,
		fmt.Sprintf("RELAYDB_MAX_BPS=%d", cfg.Defaults.MaxBPS),
		fmt.Sprintf("RELAYDB_TOTAL_QUOTA=%d", cfg.Defaults.TotalQuota),
		fmt.Sprintf("RELAYDB_USER_QUOTA=%d", cfg.Defaults.UserQuota),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	inst := &ServerInstance{
		ServerURL:     "http://" + address,
		cancel:        func() { cancel(); _ = os.RemoveAll(filepath.Clean(configDir)) },
		serverProcess: cmd,
	}
	if err := waitForServer(inst.ServerURL, 30*time.Second); err != nil {
		inst.Stop()
		return nil, err
	}
	return inst, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

func waitForStartupReload(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/realms")
		if err == nil {
			var realms server.RealmsResponse
			err = json.NewDecoder(resp.Body).Decode(&realms)
			_ = resp.Body.Close()
			if err == nil && realms.Reload.Count > 0 {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return fmt.Errorf("startup reload did not run within %v", timeout)
}

// Stop shuts the server down and waits for it to exit.
func (s *ServerInstance) Stop() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
	if s.serverProcess != nil {
		_ = s.serverProcess.Wait()
	}
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cartosync/internal/server/handlers"
)

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{StylesDir: dir, DBPath: "x.db"}},
		{name: "no styles dir", cfg: Config{DBPath: "x.db"}, wantErr: true},
		{name: "missing styles dir", cfg: Config{StylesDir: filepath.Join(dir, "absent"), DBPath: "x.db"}, wantErr: true},
		{name: "styles dir is a file", cfg: Config{StylesDir: file, DBPath: "x.db"}, wantErr: true},
		{name: "no db", cfg: Config{StylesDir: dir}, wantErr: true},
		{name: "negative rate", cfg: Config{StylesDir: dir, DBPath: "x.db", WriteRate: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServe(t *testing.T) {
	stylesDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(stylesDir, "osm"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(stylesDir, "osm", "osm.mml"), []byte(`{}`), 0o600))

	cfg := Config{
		StylesDir: stylesDir,
		DBPath:    filepath.Join(t.TempDir(), "server.db"),
		WriteRate: 10,
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), "test")
	}()

	resp, err := http.Get(baseURL + "/api/v1/health")
	require.NoError(t, err)
	var health handlers.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	_ = resp.Body.Close()
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)

	resp, err = http.Get(baseURL + "/api/v1/projects/osm/osm.mcp")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = Serve(context.Background(), ln, Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)), "test")
	assert.Error(t, err)
}

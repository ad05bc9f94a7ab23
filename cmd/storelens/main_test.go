package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/storelens/cmd/storelens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorefront(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Acme Goods</title></head>
<body><a href="/products/widget">Widget</a>
<p>Write to hello@acme.test</p>
<a href="https://instagram.com/acmegoods">IG</a></body></html>`))
	})
	mux.HandleFunc("/products.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"Widget","handle":"widget","variants":[{"price":"9.99"}]}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := newStorefront(t)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	domain := strings.TrimPrefix(srv.URL, "http://")
	ctx := context.Background()

	run := func(args ...string) (string, string, error) {
		m := main.NewMain()
		m.DBPath = dbPath
		var stdout, stderr bytes.Buffer
		err := m.Run(ctx, args, &stdout, &stderr)
		return stdout.String(), stderr.String(), err
	}

	out, _, err := run("extract", srv.URL+"/")
	require.NoError(t, err)
	assert.Contains(t, out, `"brandName": "Acme Goods"`)
	assert.Contains(t, out, `"totalProducts": 1`)
	assert.Contains(t, out, "hello@acme.test")

	out, _, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, domain+"  Acme Goods  1 products")

	out, _, err = run("show", domain)
	require.NoError(t, err)
	assert.Contains(t, out, `"fingerprint"`)
	assert.Contains(t, out, "instagram")

	out, _, err = run("delete", domain, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, stderr, err := run("show", domain)
	require.Error(t, err)
	assert.Contains(t, stderr, "no insights stored")
}

func TestMain_Run_ExtractUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"extract", "--no-save", srv.URL}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "website not accessible")
	assert.Contains(t, stdout.String(), `"success": false`)
}

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProxy(url string) *StdioProxy {
	return &StdioProxy{
		endpoint:   url + "/mcp",
		httpClient: &http.Client{},
	}
}

func TestProxyForwardsRequests(t *testing.T) {
	var received []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = body
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`))
	}))
	defer ts.Close()

	proxy := newTestProxy(ts.URL)

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	var out bytes.Buffer
	require.NoError(t, proxy.Run(in, &out))

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, string(received))
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`, strings.TrimSpace(out.String()))
}

func TestProxySkipsBlankLines(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
	}))
	defer ts.Close()

	proxy := newTestProxy(ts.URL)

	in := strings.NewReader("\n\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n\n")
	var out bytes.Buffer
	require.NoError(t, proxy.Run(in, &out))

	assert.Equal(t, 1, calls)
}

func TestProxyServerErrorBecomesJSONRPCError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	proxy := newTestProxy(ts.URL)

	in := strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"tools/call"}` + "\n")
	var out bytes.Buffer
	require.NoError(t, proxy.Run(in, &out))

	var resp struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Error   struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, "7", string(resp.ID))
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "server returned 500")
}

func TestProxyUnreachableServer(t *testing.T) {
	proxy := newTestProxy("http://127.0.0.1:1")

	in := strings.NewReader(`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n")
	var out bytes.Buffer
	require.NoError(t, proxy.Run(in, &out))

	assert.Contains(t, out.String(), `"error"`)
	assert.Contains(t, out.String(), `"id":2`)
}

func TestExtractID(t *testing.T) {
	assert.Equal(t, "42", string(extractID([]byte(`{"id":42,"method":"x"}`))))
	assert.Equal(t, `"abc"`, string(extractID([]byte(`{"id":"abc"}`))))
	assert.Equal(t, "null", string(extractID([]byte(`not json`))))
	assert.Equal(t, "null", string(extractID([]byte(`{"method":"x"}`))))
}

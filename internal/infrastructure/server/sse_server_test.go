package server_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/server"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/testutil"
)

// echoDispatch answers every request with its method name, standing in
// for the full JSON-RPC dispatcher.
var echoDispatch = testutil.EchoDispatch

func newSSETestServer(t *testing.T) (*httptest.Server, *server.SSEServer) {
	t.Helper()
	sse := server.NewSSEServer(echoDispatch, server.NewSessionStore(), logging.NewNop())
	srv := httptest.NewServer(sse)
	t.Cleanup(srv.Close)
	return srv, sse
}

type sseEvent struct {
	name string
	data string
}

// readEvent reads one complete SSE event off the stream.
func readEvent(t *testing.T, reader *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if ev.name != "" || ev.data != "" {
				return ev
			}
			continue
		}
		if strings.HasPrefix(line, "event: ") {
			ev.name = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

// openStream opens an SSE connection and returns its session id and a
// reader positioned after the bootstrap event.
func openStream(t *testing.T, srv *httptest.Server) (string, *bufio.Reader) {
	t.Helper()

	resp, err := http.Get(srv.URL + "/sse")
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	ev := readEvent(t, reader)
	require.Equal(t, "endpoint", ev.name)

	endpoint, err := url.Parse(ev.data)
	require.NoError(t, err)
	sessionID := endpoint.Query().Get("sessionId")
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "/sse", endpoint.Path)
	return sessionID, reader
}

func postMessage(t *testing.T, srv *httptest.Server, sessionID, body string) *http.Response {
	t.Helper()
	target := srv.URL + "/sse"
	if sessionID != "" {
		target += "?sessionId=" + sessionID
	}
	resp, err := http.Post(target, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeRPC(t *testing.T, resp *http.Response) shared.JSONRPCResponse {
	t.Helper()
	var out shared.JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSSEConcurrentStreamsGetDistinctSessions(t *testing.T) {
	srv, sse := newSSETestServer(t)

	first, _ := openStream(t, srv)
	second, _ := openStream(t, srv)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, sse.Store().Len())
}

func TestSSEMessageRoutedBySessionID(t *testing.T) {
	srv, _ := newSSETestServer(t)
	sessionID, reader := openStream(t, srv)

	resp := postMessage(t, srv, sessionID, `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	echoed := decodeRPC(t, resp)
	require.Nil(t, echoed.Error)

	ev := readEvent(t, reader)
	assert.Equal(t, "message", ev.name)
	var streamed shared.JSONRPCResponse
	require.NoError(t, json.Unmarshal([]byte(ev.data), &streamed))
	assert.JSONEq(t, `1`, string(streamed.ID))
}

func TestSSENotificationGetsNoBody(t *testing.T) {
	srv, _ := newSSETestServer(t)
	sessionID, _ := openStream(t, srv)

	resp := postMessage(t, srv, sessionID, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var buf [1]byte
	n, _ := resp.Body.Read(buf[:])
	assert.Zero(t, n, "notifications should not produce a response body")
}

func TestSSEMessageWithoutSessionIDIsRejected(t *testing.T) {
	srv, sse := newSSETestServer(t)
	openStream(t, srv)

	resp := postMessage(t, srv, "", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decodeRPC(t, resp)
	require.NotNil(t, out.Error)
	assert.Equal(t, int(shared.InvalidParams), out.Error.Code)
	assert.Equal(t, 1, sse.Store().Len(), "a rejected message must not touch the session map")
}

func TestSSEMessageWithUnknownSessionIDIsRejected(t *testing.T) {
	srv, sse := newSSETestServer(t)
	openStream(t, srv)

	resp := postMessage(t, srv, "no-such-session", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	out := decodeRPC(t, resp)
	require.NotNil(t, out.Error)
	assert.Equal(t, int(shared.NotFound), out.Error.Code)
	assert.Equal(t, 1, sse.Store().Len(), "an unknown id must not touch the session map")
}

func TestSSESessionIDIsStaleAfterDisconnect(t *testing.T) {
	srv, sse := newSSETestServer(t)

	resp, err := http.Get(srv.URL + "/sse")
	require.NoError(t, err)
	reader := bufio.NewReader(resp.Body)
	ev := readEvent(t, reader)
	endpoint, err := url.Parse(ev.data)
	require.NoError(t, err)
	sessionID := endpoint.Query().Get("sessionId")

	resp.Body.Close()
	require.Eventually(t, func() bool {
		return sse.Store().Len() == 0
	}, time.Second, 10*time.Millisecond, "disconnect should remove the session")

	late := postMessage(t, srv, sessionID, `{"jsonrpc":"2.0","id":2,"method":"ping"}`)
	assert.Equal(t, http.StatusNotFound, late.StatusCode)
}

func TestSSERejectsOtherMethods(t *testing.T) {
	srv, _ := newSSETestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

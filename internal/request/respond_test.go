package request

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhdewitt/httpcore/internal/httperr"
	"github.com/nhdewitt/httpcore/internal/response"
)

func newConnRequest(t *testing.T, raw string) (*Request, *fakeConn) {
	t.Helper()
	conn := &fakeConn{Reader: strings.NewReader(raw)}
	r, err := RequestFromConn(conn)
	require.NoError(t, err)
	return r, conn
}

func TestSend(t *testing.T) {
	r, conn := newConnRequest(t, "GET /hello HTTP/1.1\r\nHost: x\r\n\r\n")
	require.NoError(t, r.Send("hi"))

	want := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhi"
	if diff := cmp.Diff(want, conn.String()); diff != "" {
		t.Errorf("Send() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, r.Responded())
	assert.ErrorIs(t, r.Send("again"), ErrAlreadyResponded)
}

func TestSendJSON(t *testing.T) {
	r, conn := newConnRequest(t, "GET /json HTTP/1.1\r\n\r\n")
	require.NoError(t, r.SendJSON(`{"ok":true}`))

	want := "HTTP/1.1 200 OK\r\nContent-Length: 11\r\nContent-Type: application/json\r\n\r\n{\"ok\":true}"
	if diff := cmp.Diff(want, conn.String()); diff != "" {
		t.Errorf("SendJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	r, conn := newConnRequest(t, "POST /echo HTTP/1.1\r\nContent-Length: 4\r\n\r\nping")
	require.NoError(t, r.EncodeJSON(map[string]string{"body": string(r.Body)}))

	_, body, ok := strings.Cut(conn.String(), "\r\n\r\n")
	require.True(t, ok)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, map[string]string{"body": "ping"}, got)
	assert.Contains(t, conn.String(), "Content-Type: application/json\r\n")

	r, _ = newConnRequest(t, "GET / HTTP/1.1\r\n\r\n")
	err := r.EncodeJSON(make(chan int))
	require.Error(t, err)
	assert.False(t, r.Responded())
}

func TestRespond(t *testing.T) {
	r, conn := newConnRequest(t, "GET /missing HTTP/1.1\r\n\r\n")
	resp := response.NewString(response.StatusNotFound, "nope")
	resp.AddHeader("Content-Type", "text/plain")
	require.NoError(t, r.Respond(resp))
	assert.Equal(t, "HTTP/1.1 404 NOT FOUND\r\nContent-Length: 4\r\nContent-Type: text/plain\r\n\r\nnope", conn.String())
}

func TestRespondWithoutConnection(t *testing.T) {
	r, err := RequestFromReader(strings.NewReader("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, r.Send("x"), ErrNoConnection)
}

type brokenConn struct {
	io.Reader
}

func (brokenConn) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestRespondWriteError(t *testing.T) {
	r, err := RequestFromConn(brokenConn{Reader: strings.NewReader("GET / HTTP/1.1\r\n\r\n")})
	require.NoError(t, err)

	err = r.Send("x")
	require.Error(t, err)
	var ioErr *httperr.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write response", ioErr.Op)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

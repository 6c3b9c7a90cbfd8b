package headers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhdewitt/httpcore/internal/httperr"
)

func TestHeadersParse(t *testing.T) {
	// Test: Valid single header
	headers := NewHeaders()
	data := []byte("Host: localhost:42069\r\n\r\n")
	n, done, err := headers.Parse(data)
	require.NoError(t, err)
	require.NotNil(t, headers)
	assert.Equal(t, "localhost:42069", headers["host"])
	assert.Equal(t, 23, n)
	assert.False(t, done)
	n, done, err = headers.Parse(data[n:])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, done)

	// Test: Leading whitespace in the field name
	headers = NewHeaders()
	data = []byte(" Host: localhost:42069 \r\n")
	_, _, err = headers.Parse(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httperr.InvalidHeaderName))

	// Test: Invalid spacing header
	headers = NewHeaders()
	data = []byte("           Host : localhost:42069             \r\n\r\n")
	n, done, err = headers.Parse(data)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, done)

	// Test: Valid 3 headers
	headers = NewHeaders()
	data = []byte("Host: example.com\r\nUser-Agent: test-agent/1.0\r\nAccept: */*\r\n\r\n")
	for _, want := range []struct {
		n    int
		done bool
	}{{19, false}, {28, false}, {13, false}, {2, true}} {
		n, done, err = headers.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, want.n, n)
		assert.Equal(t, want.done, done)
		data = data[n:]
	}
	assert.Equal(t, "example.com", headers["host"])
	assert.Equal(t, "test-agent/1.0", headers["user-agent"])
	assert.Equal(t, "*/*", headers["accept"])

	// Valid done
	headers = NewHeaders()
	data = []byte("\r\n extra text ignored")
	n, done, err = headers.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, done)

	// Bare LF terminators
	headers = NewHeaders()
	data = []byte("Host: x\n\n")
	n, done, err = headers.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.False(t, done)
	n, done, err = headers.Parse(data[n:])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, done)
	assert.Equal(t, "x", headers["host"])

	// Partial line (no terminator)
	headers = NewHeaders()
	data = []byte("Host: loca")
	n, done, err = headers.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, done)

	// Existing headers are kept
	headers = NewHeaders()
	headers["user-agent"] = "curl/7.54.1"
	headers["accept-language"] = "en-US"
	data = []byte("Host: localhost:42069\r\n")
	n, done, err = headers.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 23, n)
	assert.False(t, done)
	assert.Equal(t, "localhost:42069", headers["host"])
	assert.Equal(t, "en-US", headers["accept-language"])
	assert.Equal(t, "curl/7.54.1", headers["user-agent"])

	// Missing ": " separator
	for _, line := range []string{"Host localhost:42069\r\n", "Host localhost 42069\r\n", "Host:localhost\r\n"} {
		headers = NewHeaders()
		n, done, err = headers.Parse([]byte(line))
		require.Error(t, err, line)
		assert.True(t, errors.Is(err, httperr.MissingHeaderSeparator), line)
		assert.Equal(t, 0, n)
		assert.False(t, done)
	}

	// Invalid character in header key
	headers = NewHeaders()
	data = []byte("H©st: localhost:42069\r\n\r\n")
	n, done, err = headers.Parse(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httperr.InvalidHeaderName))
	assert.Equal(t, 0, n)
	assert.False(t, done)

	// Duplicate keys keep the last value
	headers = NewHeaders()
	data = []byte("Set-Person: lane-loves-go\r\nset-person: prime-loves-zig\r\nSET-PERSON: tj-loves-ocaml\r\n\r\n")
	for range 4 {
		n, done, err = headers.Parse(data)
		require.NoError(t, err)
		data = data[n:]
	}
	assert.Equal(t, "tj-loves-ocaml", headers["set-person"])
	assert.True(t, done)
}

func TestHeadersParseLineValue(t *testing.T) {
	headers := NewHeaders()
	require.NoError(t, headers.ParseLine([]byte("Referer: http://example.com: 8080/a")))
	require.NoError(t, headers.ParseLine([]byte("X-Pad: a b  ")))

	assert.Equal(t, "http://example.com: 8080/a", headers.Get("REFERER"))
	assert.Equal(t, "a b  ", headers.Get("x-pad"))

	v, ok := headers.Lookup("x-missing")
	assert.False(t, ok)
	assert.Empty(t, v)

	headers.Del("X-Pad")
	_, ok = headers.Lookup("x-pad")
	assert.False(t, ok)
}

func TestFieldsFirstWriteWins(t *testing.T) {
	var f Fields
	assert.True(t, f.Add("Content-Type", "application/json"))
	assert.False(t, f.Add("Content-Type", "text/plain"))
	assert.False(t, f.Add("content-type", "text/html"))
	assert.True(t, f.Add("X-Request-Id", "abc"))

	want := []Field{
		{Key: "Content-Type", Value: "application/json"},
		{Key: "X-Request-Id", Value: "abc"},
	}
	if diff := cmp.Diff(want, f.All()); diff != "" {
		t.Errorf("Fields.All() mismatch (-want +got):\n%s", diff)
	}

	v, ok := f.Get("CONTENT-TYPE")
	require.True(t, ok)
	assert.Equal(t, "application/json", v)
	assert.Equal(t, 2, f.Len())
}

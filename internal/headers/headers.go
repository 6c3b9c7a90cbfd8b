package headers

import (
	"bytes"
	"strings"

	"github.com/nhdewitt/httpcore/internal/httperr"
)

const (
	separator           = ": "
	validFieldNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$%&'*+-.^_`|~"
)

// Headers is the header map of a parsed request. Keys are lowercase.
type Headers map[string]string

func NewHeaders() Headers {
	return map[string]string{}
}

// Parse consumes one header line from data. It returns the number of bytes
// consumed and done=true once the empty line ending the header block has been
// read. n == 0 with a nil error means data holds no complete line yet.
// Lines may end in CRLF or a bare LF.
func (h Headers) Parse(data []byte) (n int, done bool, err error) {
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		return 0, false, nil
	}
	n = idx + 1

	line := bytes.TrimSuffix(data[:idx], []byte("\r"))
	if len(line) == 0 {
		return n, true, nil
	}

	if err := h.ParseLine(line); err != nil {
		return 0, false, err
	}
	return n, false, nil
}

// ParseLine stores a single "Key: Value" line that has already had its line
// terminator removed. The key is split at the first ": ", so values may
// contain colons.
func (h Headers) ParseLine(line []byte) error {
	key, value, ok := bytes.Cut(line, []byte(separator))
	if !ok {
		return httperr.NewParseError(httperr.MissingHeaderSeparator, string(line), nil)
	}
	if len(key) == 0 {
		return httperr.NewParseError(httperr.InvalidHeaderName, string(line), nil)
	}
	for _, c := range key {
		if strings.IndexByte(validFieldNameChars, c) == -1 {
			return httperr.NewParseError(httperr.InvalidHeaderName, string(line), nil)
		}
	}

	h.Set(string(key), string(value))
	return nil
}

// Set stores value under the lowercased key, replacing any earlier value.
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Headers) Get(key string) (value string) {
	return h[strings.ToLower(key)]
}

func (h Headers) Lookup(key string) (value string, ok bool) {
	value, ok = h[strings.ToLower(key)]
	return value, ok
}

func (h Headers) Del(key string) {
	delete(h, strings.ToLower(key))
}

// Field is a single response header as supplied by the caller.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered header list for responses. The first value added for
// a key (compared case-insensitively) is kept; the key keeps the casing of
// that first call.
type Fields struct {
	list []Field
}

// Add appends key unless it is already present and reports whether it did.
func (f *Fields) Add(key, value string) bool {
	if _, ok := f.Get(key); ok {
		return false
	}
	f.list = append(f.list, Field{Key: key, Value: value})
	return true
}

func (f *Fields) Get(key string) (string, bool) {
	for _, fl := range f.list {
		if strings.EqualFold(fl.Key, key) {
			return fl.Value, true
		}
	}
	return "", false
}

func (f *Fields) Len() int {
	return len(f.list)
}

// All returns the fields in insertion order.
func (f *Fields) All() []Field {
	out := make([]Field, len(f.list))
	copy(out, f.list)
	return out
}

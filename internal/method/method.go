package method

import (
	"fmt"
	"strings"

	"github.com/nhdewitt/httpcore/internal/httperr"
)

// Method is one of the eight HTTP/1.1 request methods.
type Method uint8

const (
	Options Method = iota + 1
	Get
	Head
	Post
	Put
	Delete
	Trace
	Connect
)

var tokens = map[Method]string{
	Options: "OPTIONS",
	Get:     "GET",
	Head:    "HEAD",
	Post:    "POST",
	Put:     "PUT",
	Delete:  "DELETE",
	Trace:   "TRACE",
	Connect: "CONNECT",
}

// All returns every method in declaration order.
func All() []Method {
	return []Method{Options, Get, Head, Post, Put, Delete, Trace, Connect}
}

// Parse converts a method token, ignoring case. Anything outside the eight
// known verbs is an UnknownMethod parse error.
func Parse(text string) (Method, error) {
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			return 0, httperr.NewParseError(httperr.UnknownMethod, text, nil)
		}
	}

	upper := strings.ToUpper(text)
	for _, m := range All() {
		if tokens[m] == upper {
			return m, nil
		}
	}

	return 0, httperr.NewParseError(httperr.UnknownMethod, text, nil)
}

func (m Method) IsValid() bool {
	_, ok := tokens[m]
	return ok
}

// String returns the uppercase token as written on the wire.
func (m Method) String() string {
	if s, ok := tokens[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// Package errors attaches stable business codes to errors so the transport
// layer can map any failure to a response without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Coder describes a registered business code.
type Coder interface {
	// Code returns the business code carried in the response body.
	Code() int
	// HTTPStatus returns the status the transport layer should answer with.
	HTTPStatus() int
	// String returns the user-facing message for this code.
	String() string
}

type defaultCoder struct {
	code   int
	status int
	msg    string
}

func (c defaultCoder) Code() int       { return c.code }
func (c defaultCoder) HTTPStatus() int { return c.status }
func (c defaultCoder) String() string  { return c.msg }

var (
	codesMu sync.RWMutex
	codes   = map[int]Coder{}
)

var unknownCoder = defaultCoder{code: 1, status: http.StatusInternalServerError, msg: "internal server error"}

// Register records a business code with its HTTP status and message.
// Registering the same code twice panics; codes are wired at init time.
func Register(code int, status int, msg string) {
	codesMu.Lock()
	defer codesMu.Unlock()
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("code %d already registered", code))
	}
	codes[code] = defaultCoder{code: code, status: status, msg: msg}
}

type withCode struct {
	code  int
	cause error
	msg   string
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %v", w.msg, w.cause)
	}
	return w.msg
}

func (w *withCode) Unwrap() error { return w.cause }

// WithCode wraps a formatted message in an error carrying a business code.
func WithCode(code int, format string, args ...any) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...)}
}

// WrapC annotates an underlying error with a business code.
func WrapC(err error, code int, format string, args ...any) error {
	return &withCode{code: code, cause: err, msg: fmt.Sprintf(format, args...)}
}

// ParseCoder resolves the registered Coder of err. Errors without a code,
// or with a code nobody registered, resolve to the unknown coder.
func ParseCoder(err error) Coder {
	var wc *withCode
	if !errors.As(err, &wc) {
		return unknownCoder
	}
	codesMu.RLock()
	defer codesMu.RUnlock()
	if coder, ok := codes[wc.code]; ok {
		return coder
	}
	return unknownCoder
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	var wc *withCode
	return errors.As(err, &wc) && wc.code == code
}

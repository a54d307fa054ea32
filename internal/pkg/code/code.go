// Package code declares the business codes shared by every handler.
package code

import (
	"net/http"

	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

const (
	// ErrBind - 100001: request body could not be bound.
	ErrBind = 100001
	// ErrUnauthenticated - 100002: missing or invalid credentials.
	ErrUnauthenticated = 100002
	// ErrDuplicateEmail - 100003: email already registered.
	ErrDuplicateEmail = 100003
	// ErrUserOrPassword - 100004: unknown user or wrong password.
	ErrUserOrPassword = 100004

	// ErrInvalidName - 100101: empty or malformed resource name.
	ErrInvalidName = 100101
	// ErrInvalidParent - 100102: parent folder absent or not owned by the caller.
	ErrInvalidParent = 100102
	// ErrInvalidEncoding - 100103: uploaded content is not valid base64.
	ErrInvalidEncoding = 100103
	// ErrNotFound - 100104: resource absent or owned by another user.
	ErrNotFound = 100104
	// ErrStorage - 100105: the storage transaction failed and was rolled back.
	ErrStorage = 100105
)

func init() {
	errors.Register(ErrBind, http.StatusBadRequest, "invalid request body")
	errors.Register(ErrUnauthenticated, http.StatusUnauthorized, "authentication required")
	errors.Register(ErrDuplicateEmail, http.StatusBadRequest, "email already registered")
	errors.Register(ErrUserOrPassword, http.StatusUnauthorized, "invalid email or password")

	errors.Register(ErrInvalidName, http.StatusBadRequest, "name is required")
	errors.Register(ErrInvalidParent, http.StatusNotFound, "parent folder not found")
	errors.Register(ErrInvalidEncoding, http.StatusBadRequest, "content is not valid base64")
	errors.Register(ErrNotFound, http.StatusNotFound, "resource not found")
	errors.Register(ErrStorage, http.StatusInternalServerError, "storage failure")
}

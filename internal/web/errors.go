package web

import (
	stderrors "errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/internal/pkg/code"
	"github.com/hantaozhou/docvault/internal/service"
	ijwt "github.com/hantaozhou/docvault/internal/web/jwt"
	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

// storeErr maps the store's sentinel errors onto the registered business
// codes. Anything unrecognized counts as a storage failure.
func storeErr(err error) error {
	switch {
	case stderrors.Is(err, service.ErrNameRequired):
		return errors.WrapC(err, code.ErrInvalidName, "invalid name")
	case stderrors.Is(err, service.ErrInvalidParent):
		return errors.WrapC(err, code.ErrInvalidParent, "invalid parent folder")
	case stderrors.Is(err, service.ErrInvalidEncoding):
		return errors.WrapC(err, code.ErrInvalidEncoding, "invalid content encoding")
	case stderrors.Is(err, service.ErrNotFound):
		return errors.WrapC(err, code.ErrNotFound, "resource not found")
	default:
		return errors.WrapC(err, code.ErrStorage, "storage failure")
	}
}

// ownerId reads the authenticated user injected by the login middleware.
func ownerId(ctx *gin.Context) int64 {
	return ctx.MustGet("user").(ijwt.UserClaims).Uid
}

func pathId(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.WithCode(code.ErrBind, "invalid id %q", ctx.Param("id"))
	}
	return id, nil
}

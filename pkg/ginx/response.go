package ginx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

// ErrResponse is the JSON envelope for failed requests.
type ErrResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteResponse answers with data on success, or with the registered
// status and message of the error's business code on failure.
func WriteResponse(ctx *gin.Context, err error, data any) {
	if err != nil {
		coder := errors.ParseCoder(err)
		ctx.JSON(coder.HTTPStatus(), ErrResponse{
			Code:    coder.Code(),
			Message: coder.String(),
		})
		return
	}
	if data == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

// WriteCreated is WriteResponse with a 201 on success, for resource creation.
func WriteCreated(ctx *gin.Context, err error, data any) {
	if err != nil {
		WriteResponse(ctx, err, nil)
		return
	}
	ctx.JSON(http.StatusCreated, data)
}

package web

import (
	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/internal/pkg/code"
	"github.com/hantaozhou/docvault/internal/service"
	"github.com/hantaozhou/docvault/pkg/ginx"
	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

type FileHandler struct {
	storeSvc service.StoreService
}

func NewFileHandler(storeSvc service.StoreService) *FileHandler {
	return &FileHandler{
		storeSvc: storeSvc,
	}
}

func (h *FileHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/files")
	g.POST("", h.Upload)
	g.GET("/:id", h.Stat)
	g.GET("/:id/download", h.Download)
	g.PATCH("/:id", h.Rename)
	g.PATCH("/:id/move", h.Move)
	g.DELETE("/:id", h.Delete)
}

func (h *FileHandler) Upload(ctx *gin.Context) {
	type request struct {
		Name           string `json:"name"`
		Content        string `json:"content"`
		ParentFolderId *int64 `json:"parent_folder_id"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	file, err := h.storeSvc.UploadFile(ctx, ownerId(ctx), req.Name, req.ParentFolderId, req.Content)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteCreated(ctx, nil, file)
}

func (h *FileHandler) Stat(ctx *gin.Context) {
	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	file, err := h.storeSvc.FileStat(ctx, ownerId(ctx), id)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, file)
}

func (h *FileHandler) Download(ctx *gin.Context) {
	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	dl, err := h.storeSvc.DownloadFile(ctx, ownerId(ctx), id)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, dl)
}

func (h *FileHandler) Rename(ctx *gin.Context) {
	type request struct {
		Name string `json:"name"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	file, err := h.storeSvc.RenameFile(ctx, ownerId(ctx), id, req.Name)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, file)
}

func (h *FileHandler) Move(ctx *gin.Context) {
	type request struct {
		ParentFolderId *int64 `json:"parent_folder_id"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	file, err := h.storeSvc.MoveFile(ctx, ownerId(ctx), id, req.ParentFolderId)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, file)
}

func (h *FileHandler) Delete(ctx *gin.Context) {
	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	if err := h.storeSvc.DeleteFile(ctx, ownerId(ctx), id); err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, nil)
}

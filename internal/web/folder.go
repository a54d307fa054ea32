package web

import (
	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/internal/pkg/code"
	"github.com/hantaozhou/docvault/internal/service"
	"github.com/hantaozhou/docvault/pkg/ginx"
	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

type FolderHandler struct {
	storeSvc service.StoreService
}

func NewFolderHandler(storeSvc service.StoreService) *FolderHandler {
	return &FolderHandler{
		storeSvc: storeSvc,
	}
}

func (h *FolderHandler) RegisterRoutes(server *gin.Engine) {
	g := server.Group("/folders")
	g.POST("", h.Create)
	g.GET("/:id", h.Detail)
	g.PATCH("/:id", h.Rename)
	g.DELETE("/:id", h.Delete)
}

func (h *FolderHandler) Create(ctx *gin.Context) {
	type request struct {
		Name           string `json:"name"`
		ParentFolderId *int64 `json:"parent_folder_id"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	folder, err := h.storeSvc.CreateFolder(ctx, ownerId(ctx), req.Name, req.ParentFolderId)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteCreated(ctx, nil, folder)
}

func (h *FolderHandler) Detail(ctx *gin.Context) {
	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	view, err := h.storeSvc.FolderView(ctx, ownerId(ctx), id)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, view)
}

func (h *FolderHandler) Rename(ctx *gin.Context) {
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

	folder, err := h.storeSvc.RenameFolder(ctx, ownerId(ctx), id, req.Name)
	if err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, folder)
}

func (h *FolderHandler) Delete(ctx *gin.Context) {
	id, err := pathId(ctx)
	if err != nil {
		ginx.WriteResponse(ctx, err, nil)
		return
	}

	if err := h.storeSvc.DeleteFolder(ctx, ownerId(ctx), id); err != nil {
		ginx.WriteResponse(ctx, storeErr(err), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, nil)
}

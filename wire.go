//go:build wireinject

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/hantaozhou/docvault/internal/repository"
	"github.com/hantaozhou/docvault/internal/repository/dao"
	"github.com/hantaozhou/docvault/internal/service"
	"github.com/hantaozhou/docvault/internal/web"
	ijwt "github.com/hantaozhou/docvault/internal/web/jwt"
	"github.com/hantaozhou/docvault/ioc"
)

func InitWebServer() *gin.Engine {
	wire.Build(
		ioc.InitDB,

		// dao
		dao.NewUserDAO,
		dao.NewTreeDAO,

		// repo
		repository.NewUserRepository,
		repository.NewTreeRepository,

		// service
		service.NewUserService,
		service.NewStoreService,

		// web
		ijwt.NewLocalJWTHandler,
		web.NewUserHandler,
		web.NewFolderHandler,
		web.NewFileHandler,

		// app
		ioc.InitGinMiddlewares,
		ioc.InitWebServer,
	)
	return nil
}

package ioc

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/internal/web"
	ijwt "github.com/hantaozhou/docvault/internal/web/jwt"
	"github.com/hantaozhou/docvault/internal/web/middleware"
)

func InitWebServer(mdls []gin.HandlerFunc,
	userHdl *web.UserHandler, folderHdl *web.FolderHandler, fileHdl *web.FileHandler) *gin.Engine {
	server := gin.Default()
	server.Use(mdls...)
	server.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	userHdl.RegisterRoutes(server)
	folderHdl.RegisterRoutes(server)
	fileHdl.RegisterRoutes(server)
	return server
}

func InitGinMiddlewares(jwtHdl ijwt.Handler) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		cors.New(cors.Config{
			AllowCredentials: true,
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{"x-jwt-token", "x-refresh-token"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
			AllowOriginFunc: func(origin string) bool {
				return strings.HasPrefix(origin, "http://localhost")
			},
			MaxAge: 12 * time.Hour,
		}),
		middleware.NewLoginJWTMiddlewareBuilder(jwtHdl).
			IgnorePaths("/healthz", "/users/signup", "/users/signin").
			CheckLogin(),
	}
}

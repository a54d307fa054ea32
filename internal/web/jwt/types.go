package jwt

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Handler interface {
	SetLoginToken(ctx *gin.Context, uid int64) error
	SetJWTToken(ctx *gin.Context, uid int64, ssid string) error
	CheckSession(ctx *gin.Context, ssid string) error
	ExtractToken(ctx *gin.Context) string
	ClearToken(ctx *gin.Context) error
}

type UserClaims struct {
	jwt.RegisteredClaims
	Uid       int64
	Ssid      string
	UserAgent string
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Uid  int64
	Ssid string
}

var (
	JWTKey   = []byte(envOr("DOCVAULT_JWT_KEY", "k6CswdUm77WKcbM68UQUuxVsHSpTCwgK"))
	RCJWTKey = []byte(envOr("DOCVAULT_REFRESH_KEY", "k6CswdUm77WKcbM68UQUuxVsHSpTCwgA"))
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

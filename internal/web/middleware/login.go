package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hantaozhou/docvault/internal/pkg/code"
	ijwt "github.com/hantaozhou/docvault/internal/web/jwt"
	"github.com/hantaozhou/docvault/pkg/ginx"
	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

type LoginJWTMiddlewareBuilder struct {
	ijwt.Handler
	ignorePaths map[string]struct{}
}

func NewLoginJWTMiddlewareBuilder(hdl ijwt.Handler) *LoginJWTMiddlewareBuilder {
	return &LoginJWTMiddlewareBuilder{
		Handler:     hdl,
		ignorePaths: make(map[string]struct{}),
	}
}

func (b *LoginJWTMiddlewareBuilder) IgnorePaths(paths ...string) *LoginJWTMiddlewareBuilder {
	for _, p := range paths {
		b.ignorePaths[p] = struct{}{}
	}
	return b
}

// CheckLogin resolves the authenticated user from the bearer token and puts
// the claims on the context. Handlers below this middleware always have a
// verified owner id; the store itself never sees an unauthenticated call.
func (b *LoginJWTMiddlewareBuilder) CheckLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := b.ignorePaths[ctx.Request.URL.Path]; ok {
			return
		}

		tokenStr := b.ExtractToken(ctx)
		if tokenStr == "" {
			b.reject(ctx)
			return
		}

		var uc ijwt.UserClaims
		token, err := jwt.ParseWithClaims(tokenStr, &uc, func(token *jwt.Token) (interface{}, error) {
			return ijwt.JWTKey, nil
		})
		if err != nil || token == nil || !token.Valid {
			b.reject(ctx)
			return
		}

		if err := b.CheckSession(ctx, uc.Ssid); err != nil {
			b.reject(ctx)
			return
		}

		ctx.Set("user", uc)
	}
}

func (b *LoginJWTMiddlewareBuilder) reject(ctx *gin.Context) {
	ginx.WriteResponse(ctx, errors.WithCode(code.ErrUnauthenticated, "invalid or missing token"), nil)
	ctx.Abort()
}

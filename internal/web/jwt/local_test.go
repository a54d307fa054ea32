package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func testCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/users/signin", nil)
	return ctx, w
}

func TestLoginTokenLifecycle(t *testing.T) {
	h := NewLocalJWTHandler()

	ctx, w := testCtx(t)
	if err := h.SetLoginToken(ctx, 42); err != nil {
		t.Fatalf("SetLoginToken: %v", err)
	}
	tokenStr := w.Header().Get("x-jwt-token")
	if tokenStr == "" {
		t.Fatalf("no access token header set")
	}
	if w.Header().Get("x-refresh-token") == "" {
		t.Fatalf("no refresh token header set")
	}

	var uc UserClaims
	token, err := jwt.ParseWithClaims(tokenStr, &uc, func(token *jwt.Token) (interface{}, error) {
		return JWTKey, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if uc.Uid != 42 {
		t.Fatalf("token uid = %d, want 42", uc.Uid)
	}
	if err := h.CheckSession(ctx, uc.Ssid); err != nil {
		t.Fatalf("fresh session rejected: %v", err)
	}

	// Signout revokes the session behind both tokens.
	signoutCtx, _ := testCtx(t)
	signoutCtx.Set("user", uc)
	if err := h.ClearToken(signoutCtx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if err := h.CheckSession(ctx, uc.Ssid); err == nil {
		t.Fatalf("session still valid after signout")
	}
}

func TestExtractToken(t *testing.T) {
	h := NewLocalJWTHandler()

	ctx, _ := testCtx(t)
	if got := h.ExtractToken(ctx); got != "" {
		t.Fatalf("ExtractToken without header = %q, want empty", got)
	}

	ctx.Request.Header.Set("Authorization", "Bearer abc")
	if got := h.ExtractToken(ctx); got != "abc" {
		t.Fatalf("ExtractToken = %q, want %q", got, "abc")
	}

	ctx.Request.Header.Set("Authorization", "abc")
	if got := h.ExtractToken(ctx); got != "" {
		t.Fatalf("ExtractToken with malformed header = %q, want empty", got)
	}
}

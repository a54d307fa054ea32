package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var _ Handler = &LocalJWTHandler{}

// LocalJWTHandler keeps live sessions in an in-process cache. One session
// id (ssid) backs both the access and the refresh token, so clearing it
// invalidates the pair at once.
type LocalJWTHandler struct {
	cache         *cache.Cache
	signingMethod jwt.SigningMethod
	rcExpiration  time.Duration
}

func NewLocalJWTHandler() Handler {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &LocalJWTHandler{
		cache:         c,
		signingMethod: jwt.SigningMethodHS512,
		rcExpiration:  time.Hour * 24 * 7,
	}
}

func (h *LocalJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	_, found := h.cache.Get(fmt.Sprintf("users:ssid:%s", ssid))
	if !found {
		return errors.New("session expired or revoked")
	}
	return nil
}

func (h *LocalJWTHandler) ExtractToken(ctx *gin.Context) string {
	authCode := ctx.GetHeader("Authorization")
	if authCode == "" {
		return authCode
	}
	segs := strings.Split(authCode, " ")
	if len(segs) != 2 {
		return ""
	}
	return segs[1]
}

func (h *LocalJWTHandler) SetLoginToken(ctx *gin.Context, uid int64) error {
	ssid := uuid.New().String()
	h.cache.Set(fmt.Sprintf("users:ssid:%s", ssid), struct{}{}, h.rcExpiration)

	err := h.setRefreshToken(ctx, uid, ssid)
	if err != nil {
		return err
	}
	return h.SetJWTToken(ctx, uid, ssid)
}

func (h *LocalJWTHandler) ClearToken(ctx *gin.Context) error {
	ctx.Header("x-jwt-token", "")
	ctx.Header("x-refresh-token", "")
	uc := ctx.MustGet("user").(UserClaims)

	h.cache.Delete(fmt.Sprintf("users:ssid:%s", uc.Ssid))

	return nil
}

func (h *LocalJWTHandler) SetJWTToken(ctx *gin.Context, uid int64, ssid string) error {
	uc := UserClaims{
		Uid:       uid,
		Ssid:      ssid,
		UserAgent: ctx.GetHeader("User-Agent"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 30)),
		},
	}
	token := jwt.NewWithClaims(h.signingMethod, uc)
	tokenStr, err := token.SignedString(JWTKey)
	if err != nil {
		return err
	}
	ctx.Header("x-jwt-token", tokenStr)
	return nil
}

func (h *LocalJWTHandler) setRefreshToken(ctx *gin.Context, uid int64, ssid string) error {
	rc := RefreshClaims{
		Uid:  uid,
		Ssid: ssid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.rcExpiration)),
		},
	}
	token := jwt.NewWithClaims(h.signingMethod, rc)
	tokenStr, err := token.SignedString(RCJWTKey)
	if err != nil {
		return err
	}
	ctx.Header("x-refresh-token", tokenStr)
	return nil
}

package web

import (
	stderrors "errors"

	regexp "github.com/dlclark/regexp2"
	"github.com/gin-gonic/gin"

	"github.com/hantaozhou/docvault/internal/domain"
	"github.com/hantaozhou/docvault/internal/pkg/code"
	"github.com/hantaozhou/docvault/internal/service"
	ijwt "github.com/hantaozhou/docvault/internal/web/jwt"
	"github.com/hantaozhou/docvault/pkg/ginx"
	"github.com/hantaozhou/docvault/pkg/ginx/errors"
)

const (
	emailRegexPattern = "^\\w+([-+.]\\w+)*@\\w+([-.]\\w+)*\\.\\w+([-.]\\w+)*$"
	// at least 8 chars with a letter, a digit and a symbol
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d)(?=.*[$@$!%*#?&])[A-Za-z\d$@$!%*#?&]{8,}$`
)

type UserHandler struct {
	emailRegex     *regexp.Regexp
	passwordRexExp *regexp.Regexp
	userSvc        service.UserService
	jwtHdl         ijwt.Handler
}

func NewUserHandler(userSvc service.UserService, jwtHdl ijwt.Handler) *UserHandler {
	return &UserHandler{
		emailRegex:     regexp.MustCompile(emailRegexPattern, regexp.None),
		passwordRexExp: regexp.MustCompile(passwordRegexPattern, regexp.None),
		userSvc:        userSvc,
		jwtHdl:         jwtHdl,
	}
}

func (h *UserHandler) RegisterRoutes(server *gin.Engine) {
	ug := server.Group("/users")
	ug.POST("/signup", h.SignUp)
	ug.POST("/signin", h.SignIn)
	ug.POST("/signout", h.SignOut)
}

type userProfile struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
}

func (h *UserHandler) SignUp(ctx *gin.Context) {
	type ReqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var reqBody ReqBody
	if err := ctx.ShouldBindJSON(&reqBody); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	isEmail, err := h.emailRegex.MatchString(reqBody.Email)
	if err != nil || !isEmail {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "malformed email address"), nil)
		return
	}

	isPassword, err := h.passwordRexExp.MatchString(reqBody.Password)
	if err != nil || !isPassword {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "password too weak"), nil)
		return
	}

	u, err := h.userSvc.Signup(ctx, domain.User{
		Email:    reqBody.Email,
		Password: reqBody.Password,
	})
	switch {
	case err == nil:
		ginx.WriteCreated(ctx, nil, userProfile{Id: u.Id, Email: u.Email})
	case stderrors.Is(err, service.ErrDuplicateEmail):
		ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrDuplicateEmail, "duplicate email"), nil)
	default:
		ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrStorage, "signup failed"), nil)
	}
}

func (h *UserHandler) SignIn(ctx *gin.Context) {
	type ReqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var reqBody ReqBody
	if err := ctx.ShouldBindJSON(&reqBody); err != nil {
		ginx.WriteResponse(ctx, errors.WithCode(code.ErrBind, "%v", err), nil)
		return
	}

	u, err := h.userSvc.Signin(ctx, reqBody.Email, reqBody.Password)
	switch {
	case err == nil:
		if err := h.jwtHdl.SetLoginToken(ctx, u.Id); err != nil {
			ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrStorage, "token issue failed"), nil)
			return
		}
		ginx.WriteResponse(ctx, nil, userProfile{Id: u.Id, Email: u.Email})
	case stderrors.Is(err, service.ErrInvalidUserOrPassword):
		ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrUserOrPassword, "signin rejected"), nil)
	default:
		ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrStorage, "signin failed"), nil)
	}
}

func (h *UserHandler) SignOut(ctx *gin.Context) {
	if err := h.jwtHdl.ClearToken(ctx); err != nil {
		ginx.WriteResponse(ctx, errors.WrapC(err, code.ErrStorage, "signout failed"), nil)
		return
	}
	ginx.WriteResponse(ctx, nil, nil)
}

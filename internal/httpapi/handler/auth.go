package handler

import (
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/auth"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login. Both issue a signed token so
// clients can go straight to authenticated routes.
type AuthHandler struct {
	BaseHandler
	users *service.UserService
	jwt   *auth.JWTService
}

func NewAuthHandler(users *service.UserService, jwt *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		users:       users,
		jwt:         jwt,
	}
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token together with the user it
// identifies.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.issueToken(c, user, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.issueToken(c, user, false)
}

func (h *AuthHandler) issueToken(c *gin.Context, user domain.User, created bool) {
	token, expiresAt, err := h.jwt.Generate(user.ID, user.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}

	if created {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}

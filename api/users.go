package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/service/user"
)

const (
	msgRegistered     = "User registered successfully"
	msgUserExists     = "User with this email or username already exists"
	msgUserNotFound   = "User not found."
	msgProfileUpdated = "Profile updated successfully."
)

type UserHandler struct {
	service user.UserUseCase
	auth    gin.HandlerFunc
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatar_url"`
}

type userResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, AvatarURL: u.AvatarURL}
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type updateResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// NewUserHandler guards the /me routes with auth; register and login stay public.
func NewUserHandler(service user.UserUseCase, auth gin.HandlerFunc) *UserHandler {
	return &UserHandler{service: service, auth: auth}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	me := router.Group("/me", h.auth)
	me.GET("", h.me)
	me.PUT("/update", h.update)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, withMessage(domain.ErrConflict, msgUserExists))
		return
	}

	resp := toUserResponse(created)
	resp.AvatarURL = nil
	c.JSON(http.StatusCreated, registerResponse{Message: msgRegistered, User: resp})
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

func (h *UserHandler) me(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	u, err := h.service.GetCurrent(c.Request.Context(), session.UserID)
	if err != nil {
		writeError(c, err, withMessage(domain.ErrNotFound, msgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) update(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.UpdateCurrent(c.Request.Context(), session.UserID, user.UpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(c, err, withMessage(domain.ErrNotFound, msgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, updateResponse{Message: msgProfileUpdated, User: toUserResponse(u)})
}

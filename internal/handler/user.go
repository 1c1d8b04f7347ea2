package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name              string   `json:"name"`
	NationalID        string   `json:"national_id,omitempty"`
	PreferredLanguage string   `json:"preferred_language,omitempty"`
	Hobbies           []string `json:"hobbies,omitempty"`
	FCMTokens         []string `json:"fcm_tokens,omitempty"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID                int64  `json:"id"`
	UUID              string `json:"uuid"`
	Name              string `json:"name"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	user := &domain.User{
		UUID:              uuid.New().String(),
		Name:              req.Name,
		NationalID:        req.NationalID,
		PreferredLanguage: req.PreferredLanguage,
		Hobbies:           req.Hobbies,
		FCMTokens:         req.FCMTokens,
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:                user.ID,
		UUID:              user.UUID,
		Name:              user.Name,
		PreferredLanguage: user.PreferredLanguage,
	})
}

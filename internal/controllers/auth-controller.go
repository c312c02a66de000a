package controllers

import (
	"net/http"

	"github.com/comandago/gin-orders-api/internal/auth"
	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthController handles registration, credential checks and token lifecycle
type AuthController interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	Token(c *gin.Context)
	TokenRefresh(c *gin.Context)
	TokenVerify(c *gin.Context)
}

type authController struct {
	users  services.UserService
	tokens auth.TokenService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(users services.UserService, tokens auth.TokenService) AuthController {
	return &authController{users: users, tokens: tokens}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Create a staff account and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Router /api/v1/auth/register [post]
func (ctl *authController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := ctl.users.Register(&user, req.Password); err != nil {
		if err == services.ErrUserAlreadyExists {
			c.JSON(http.StatusConflict, models.NewAPIError(models.ErrUserAlreadyExists, "Username is already taken"))
			return
		}
		log.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create user"))
		return
	}

	// Registering logs the account in: the response carries a token pair.
	pair, err := ctl.tokens.IssuePair(&user)
	if err != nil {
		log.WithError(err).Error("Failed to issue tokens after registration")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to issue tokens"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "access": pair.Access, "refresh": pair.Refresh})
}

// Login godoc
// @Summary Log in
// @Description Check credentials and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ctl *authController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Please provide username and password"))
		return
	}

	user, err := ctl.users.Authenticate(req.Username, req.Password)
	if err != nil {
		log.WithField("username", req.Username).Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid credentials"))
		return
	}

	pair, err := ctl.tokens.IssuePair(user)
	if err != nil {
		log.WithError(err).Error("Failed to issue tokens")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to issue tokens"))
		return
	}

	log.WithField("username", user.Username).Info("User logged in")
	c.JSON(http.StatusOK, gin.H{"user": user, "access": pair.Access, "refresh": pair.Refresh})
}

// Logout godoc
// @Summary Log out
// @Description Revoke the supplied refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body refreshRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/auth/logout [post]
func (ctl *authController) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// No refresh token supplied: revoke everything the user holds.
		if userID, exists := c.Get("userID"); exists {
			if err := ctl.tokens.RevokeAllForUser(userID.(uint)); err != nil {
				c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to log out"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
		return
	}

	if err := ctl.tokens.Revoke(req.Refresh); err != nil && err != auth.ErrRefreshTokenNotFound {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to log out"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me godoc
// @Summary Current account
// @Description Return the authenticated user's data
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func (ctl *authController) Me(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	user, err := ctl.users.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// Token godoc
// @Summary Issue a token pair
// @Description Check credentials and return access/refresh tokens with the user identity
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/token [post]
func (ctl *authController) Token(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Please provide username and password"))
		return
	}

	user, err := ctl.users.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid credentials"))
		return
	}

	pair, err := ctl.tokens.IssuePair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to issue tokens"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":     pair.Access,
		"refresh":    pair.Refresh,
		"expires_in": pair.ExpiresIn,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"is_staff": user.IsStaff,
		},
	})
}

// TokenRefresh godoc
// @Summary Refresh a token pair
// @Description Exchange a refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body refreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/token/refresh [post]
func (ctl *authController) TokenRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Please provide a refresh token"))
		return
	}

	pair, err := ctl.tokens.Refresh(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Refresh token is invalid or expired"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh, "expires_in": pair.ExpiresIn})
}

// TokenVerify godoc
// @Summary Verify an access token
// @Description Return 200 when the Bearer token is valid
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/auth/token/verify [get]
func (ctl *authController) TokenVerify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "Token is valid"})
}

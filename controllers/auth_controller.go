package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus/middleware"
	"campus/models"
	"campus/repository"
)

// Login handles user authentication and returns a JWT token.
func (ctl *Controller) Login(c *gin.Context) {
	var credentials models.Credentials
	if !ctl.bind(c, &credentials) {
		return
	}

	user, err := ctl.store.Authenticate(credentials.Username, credentials.Password)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	token, err := ctl.issuer.GenerateJWT(user, credentials.Username)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	ctl.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user logged in")
	c.JSON(http.StatusOK, models.LoginResponse{Message: "Login successful", Token: token})
}

// Register creates an account. Admin accounts cannot self-register.
func (ctl *Controller) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !ctl.bind(c, &req) {
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		ctl.respondError(c, models.Invalid("role", "unknown role %q", req.Role))
		return
	}
	if req.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin accounts cannot be self-registered"})
		return
	}

	user, err := ctl.store.CreateUser(req, "")
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
		return
	}
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.RegisterResponse{Message: "User created successfully", User: user})
}

// GetCurrentUser returns the account behind the bearer token.
func (ctl *Controller) GetCurrentUser(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	user, err := ctl.store.User(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout acknowledges a logout. Tokens are stateless, so the client drops
// its copy.
func (ctl *Controller) Logout(c *gin.Context) {
	ctl.log.WithField("user_id", middleware.UserID(c)).Info("user logged out")
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

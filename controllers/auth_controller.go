package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/planroomhq/planroom-server/config"
	"github.com/planroomhq/planroom-server/utils"
)

// Authenticate handles the signed credential login. The body is an
// HMAC-signed envelope; the signature is verified against the shared
// client secret before the credentials inside are even parsed.
func Authenticate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot read body"})
		return
	}

	data, err := utils.VerifySignedBody(config.SigningSecret(), body)
	if err != nil {
		if errors.Is(err, utils.ErrBadSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "signature mismatch"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed signed request"})
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &creds); err != nil || creds.Username == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed credentials"})
		return
	}

	account, err := accountsSvc.Authenticate(creds.Username, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(account.AccountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cannot issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account":    account,
			"auth_token": token,
		},
	})
}

// GoogleLogin exchanges a verified Google ID token for a session token,
// creating the account on first sign-in.
func GoogleLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id_token is required"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid Google token"})
		return
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token carries no email"})
		return
	}

	account, err := accountsSvc.FindOrCreateByEmail(email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(account.AccountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cannot issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account":    account,
			"auth_token": token,
		},
	})
}

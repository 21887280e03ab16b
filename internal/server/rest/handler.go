package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"authstack/internal/common"
	"authstack/internal/server/config"
	"authstack/internal/server/models"
)

// authRequest is the JSON envelope shared by sign-up and sign-in; sign-in
// simply ignores the confirmation field.
type authRequest struct {
	User struct {
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	} `json:"user"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// authResponse is the success body for sign-up and sign-in. Token is only
// populated in bearer mode; cookie-mode clients never see the raw token.
type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

func errorBody(messages ...string) gin.H {
	return gin.H{"errors": messages}
}

func (s *Server) authBody(user *models.User, token string) authResponse {
	resp := authResponse{User: userResponse{ID: user.ID, Email: user.Email}}
	if s.cfg.SessionTransport == config.TransportBearer {
		resp.Token = token
	}
	return resp
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "authstack"})
}

// handleSignUp implements POST /api/v1/sign_up.
func (s *Server) handleSignUp(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(common.MsgInvalidRequestBody))
		return
	}

	user, token, err := s.auth.SignUp(c.Request.Context(),
		req.User.Email, req.User.Password, req.User.PasswordConfirmation)
	if err != nil {
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Messages})
			return
		}
		s.logger.Error(c.Request.Context(), "sign up failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	s.logger.Info(c.Request.Context(), "user signed up", "user_id", user.ID)
	s.issueToken(c, token)
	c.JSON(http.StatusCreated, s.authBody(user, token))
}

// handleSignIn implements POST /api/v1/sign_in.
func (s *Server) handleSignIn(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(common.MsgInvalidRequestBody))
		return
	}

	user, token, err := s.auth.SignIn(c.Request.Context(), req.User.Email, req.User.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorBody(common.MsgInvalidEmailOrPassword))
			return
		}
		s.logger.Error(c.Request.Context(), "sign in failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	s.logger.Info(c.Request.Context(), "user signed in", "user_id", user.ID)
	s.issueToken(c, token)
	c.JSON(http.StatusOK, s.authBody(user, token))
}

// handleSignOut implements DELETE /api/v1/sign_out. A request with no
// credential at all is 401; a present token is revoked best-effort and
// answered 204 even when it was already revoked, so repeating a sign-out
// stays a no-op.
func (s *Server) handleSignOut(c *gin.Context) {
	token := s.extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, errorBody(common.MsgSignInRequired))
		return
	}

	if err := s.auth.SignOut(c.Request.Context(), token); err != nil {
		s.logger.Error(c.Request.Context(), "sign out failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	s.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// handleMe implements GET /api/v1/me (behind RequireAuth).
func (s *Server) handleMe(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": userResponse{ID: user.ID, Email: user.Email}})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req credentials
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	u, err := h.accounts.SignUp(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "user signed up", "user_id", u.ID)
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

func (h *Handler) signIn(c *gin.Context) {
	var req credentials
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	sess, err := h.accounts.SignIn(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": sess.Token, "userId": sess.UserID, "username": sess.UserName})
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

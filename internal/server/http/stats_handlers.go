package http

import (
	"net/http"

	"github.com/dmitrijs2005/aitutor/internal/server/badges"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usageCheck(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	allowed, err := h.usage.CheckAndConsume(c.Request.Context(), uid, h.usage.Today())
	if err != nil {
		_, msg := statusFor(err)
		h.log.Error(c.Request.Context(), "usage check failed", "user_id", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"allowed": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

func (h *Handler) usageRead(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	n, err := h.usage.Usage(c.Request.Context(), uid, h.usage.Today())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": n})
}

func (h *Handler) statsLogin(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	recorded, err := h.stats.RecordLogin(c.Request.Context(), uid, h.stats.Today())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !recorded {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged today"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) statsQuiz(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	if err := h.stats.RecordQuizTaken(c.Request.Context(), uid); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type topicRequest struct {
	UserID string `json:"userId"`
	Topic  string `json:"topic"`
}

func (h *Handler) statsTopic(c *gin.Context) {
	var req topicRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	updated, err := h.stats.RecordTopic(c.Request.Context(), uid, req.Topic)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) statsGet(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	st, err := h.stats.GetOrInit(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	topics := st.Topics
	if topics == nil {
		topics = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"total_logins":  st.TotalLogins,
		"quizzes_taken": st.QuizzesTaken,
		"topics":        topics,
	})
}

func (h *Handler) badgesList(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	list, err := h.badges.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type badgeUpdateRequest struct {
	UserID string        `json:"userId"`
	Extra  *badges.Extra `json:"extra"`
}

func (h *Handler) badgesUpdate(c *gin.Context) {
	var req badgeUpdateRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	awarded, err := h.badges.EvaluateAndAward(c.Request.Context(), uid, req.Extra)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awarded": awarded})
}

func (h *Handler) joined(c *gin.Context) {
	var req userRequest
	uid, ok := h.user(c, &req, func() string { return req.UserID })
	if !ok {
		return
	}

	at, err := h.accounts.JoinedAt(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joinedAt": at})
}

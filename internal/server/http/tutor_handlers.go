package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/server/services"
	"github.com/gin-gonic/gin"
)

// maxPDFBytes bounds an uploaded document.
var maxPDFBytes int64 = 20 << 20

type tutorRequest struct {
	UserID  string   `json:"userId"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
	Answers []string `json:"answers"`
}

type tutorCall func(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error)

// tutorRoute adapts a TutorService method to a gin handler. A mode without
// action is a 404 before the body is read. subject may come from the body or
// the ?subject= query.
func (h *Handler) tutorRoute(action services.Action, call tutorCall) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := services.Mode(c.Param("mode"))
		if !h.tutor.Supports(mode, action) {
			h.fail(c, common.ErrUnsupportedMode)
			return
		}

		var req tutorRequest
		uid, ok := h.user(c, &req, func() string { return req.UserID })
		if !ok {
			return
		}
		if req.Subject == "" {
			req.Subject = c.Query("subject")
		}

		out, err := call(c.Request.Context(), uid, mode, &req)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *Handler) tutorIntro(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.Intro(ctx, uid, mode, req.Subject)
}

func (h *Handler) tutorChat(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.Chat(ctx, uid, mode, req.Subject, req.Message)
}

func (h *Handler) tutorQuizStart(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.QuizStart(ctx, uid, mode, req.Subject)
}

func (h *Handler) tutorQuizSubmit(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.QuizSubmit(ctx, uid, mode, req.Subject, req.Answers)
}

func (h *Handler) tutorContinue(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.Continue(ctx, uid, mode, req.Subject)
}

func (h *Handler) tutorClear(ctx context.Context, uid string, mode services.Mode, req *tutorRequest) (map[string]any, error) {
	return h.tutor.ClearMemory(ctx, uid, mode, req.Subject)
}

func (h *Handler) tutorUpload(c *gin.Context) {
	if services.Mode(c.Param("mode")) != services.ModePDF {
		h.fail(c, common.ErrUnsupportedMode)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFBytes)
	uid, err := subject(c, c.PostForm("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, fmt.Errorf("%w: file too large, limit is %d MB", common.ErrValidation, maxPDFBytes>>20))
			return
		}
		h.fail(c, fmt.Errorf("%w: multipart field \"file\" is required", common.ErrValidation))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.tutor.UploadPDF(c.Request.Context(), uid, fh.Filename, fh.Header.Get("Content-Type"), content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) tutorHealth(c *gin.Context) {
	out, err := h.tutor.Health(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

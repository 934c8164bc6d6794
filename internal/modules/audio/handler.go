package audio

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sushilduseja/saarthi/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/audio")
	g.POST("/summary", h.summary)
	g.POST("/chat-message", h.chatMessage)
}

type summaryAudioDTO struct {
	SummaryID   string `json:"summaryId" binding:"required"`
	SummaryText string `json:"summaryText" binding:"required"`
}

func (h *Handler) summary(c *gin.Context) {
	var dto summaryAudioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	url, err := h.svc.Narrate(c.Request.Context(), NamespaceSummary, dto.SummaryID, dto.SummaryText)
	if err != nil {
		h.narrateError(c, err)
		return
	}
	response.OK(c, gin.H{"audioUrl": url})
}

type chatAudioDTO struct {
	MessageID   string `json:"messageId" binding:"required"`
	MessageText string `json:"messageText" binding:"required"`
}

func (h *Handler) chatMessage(c *gin.Context) {
	var dto chatAudioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	url, err := h.svc.Narrate(c.Request.Context(), NamespaceChatMessage, dto.MessageID, dto.MessageText)
	if err != nil {
		h.narrateError(c, err)
		return
	}
	response.OK(c, gin.H{"audioUrl": url})
}

func (h *Handler) narrateError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotConfigured) {
		response.ServiceUnavailable(c, "audio narration is not configured")
		return
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		response.BadGateway(c, genErr.Error())
		return
	}
	var upErr *UploadError
	if errors.As(err, &upErr) {
		response.BadGateway(c, upErr.Error())
		return
	}
	response.InternalError(c, err)
}

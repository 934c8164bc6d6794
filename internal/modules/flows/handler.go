package flows

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sushilduseja/saarthi/internal/pkg/response"
)

const maxFlowBodyBytes = 1 << 20

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/flows")
	g.GET("", h.list)
	g.POST("/:name", h.invoke)
}

func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.svc.Names())
}

func (h *Handler) invoke(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFlowBodyBytes))
	if err != nil {
		response.BadRequest(c, "unreadable request body")
		return
	}

	out, err := h.svc.Invoke(c.Request.Context(), c.Param("name"), json.RawMessage(body))
	if err != nil {
		h.invokeError(c, err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) invokeError(c *gin.Context, err error) {
	if errors.Is(err, ErrUnknownFlow) {
		response.NotFoundMsg(c, "no such flow")
		return
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		if schemaErr.Output {
			response.BadGateway(c, schemaErr.Error())
			return
		}
		response.UnprocessableEntity(c, schemaErr.Detail)
		return
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		response.BadGateway(c, genErr.Error())
		return
	}
	response.InternalError(c, err)
}

package library

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sushilduseja/saarthi/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/summaries")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:id", h.get)
}

// GET /summaries?category=...&featured=true
func (h *Handler) list(c *gin.Context) {
	catalog, err := h.svc.Load(c.Request.Context())
	if err != nil {
		h.loadError(c, err)
		return
	}

	if c.Query("featured") == "true" {
		response.OK(c, Featured(catalog))
		return
	}
	if category := c.Query("category"); category != "" {
		response.OK(c, FilterByCategory(catalog, category))
		return
	}
	response.OK(c, catalog)
}

func (h *Handler) categories(c *gin.Context) {
	catalog, err := h.svc.Load(c.Request.Context())
	if err != nil {
		h.loadError(c, err)
		return
	}
	response.OK(c, Categories(catalog))
}

// GET /summaries/:id?lang=mr returns a single-language view; without lang
// the full localized record is returned.
func (h *Handler) get(c *gin.Context) {
	summary, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.loadError(c, err)
		return
	}
	if summary == nil {
		response.NotFound(c)
		return
	}

	if raw := c.Query("lang"); raw != "" {
		lang := Language(raw)
		if !Supported(lang) {
			response.UnprocessableEntity(c, "unsupported language: "+raw)
			return
		}
		response.OK(c, ResolveSummary(*summary, lang))
		return
	}
	response.OK(c, summary)
}

func (h *Handler) loadError(c *gin.Context, err error) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		response.InternalError(c, err)
		return
	}
	response.BadGateway(c, err.Error())
}

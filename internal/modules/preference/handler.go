package preference

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sushilduseja/saarthi/internal/modules/library"
	"github.com/sushilduseja/saarthi/internal/pkg/response"
)

// ClientIDHeader identifies the device, mirroring local-storage scoping in
// the web client. The client mints a uuid on first run and sends it on every
// request.
const ClientIDHeader = "X-Client-ID"

type Handler struct {
	svc     *Service
	catalog *library.Service
}

func NewHandler(svc *Service, catalog *library.Service) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	prefs := rg.Group("/preferences", requireClientID)
	prefs.GET("/language", h.getLanguage)
	prefs.PUT("/language", h.setLanguage)
	prefs.GET("/:key", h.getPreference)
	prefs.PUT("/:key", h.setPreference)

	bookmarks := rg.Group("/bookmarks", requireClientID)
	bookmarks.GET("", h.listBookmarks)
	bookmarks.GET("/resolved", h.resolvedBookmarks)
	bookmarks.POST("/:id", h.addBookmark)
	bookmarks.DELETE("/:id", h.removeBookmark)
	bookmarks.GET("/:id", h.isBookmarked)
}

func requireClientID(c *gin.Context) {
	if strings.TrimSpace(c.GetHeader(ClientIDHeader)) == "" {
		response.BadRequest(c, "missing "+ClientIDHeader+" header")
		return
	}
	c.Next()
}

func clientID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(ClientIDHeader))
}

func (h *Handler) getLanguage(c *gin.Context) {
	lang := h.svc.GetLanguage(c.Request.Context(), clientID(c))
	response.OK(c, gin.H{"language": lang})
}

type setLanguageDTO struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) setLanguage(c *gin.Context) {
	var dto setLanguageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	lang := library.Language(dto.Language)
	if !library.Supported(lang) {
		response.UnprocessableEntity(c, "unsupported language: "+dto.Language)
		return
	}
	h.svc.SetLanguage(c.Request.Context(), clientID(c), lang)
	response.OK(c, gin.H{"language": lang})
}

// GET /preferences/:key?default=... reads a raw preference value.
func (h *Handler) getPreference(c *gin.Context) {
	key := c.Param("key")
	value := h.svc.Get(c.Request.Context(), clientID(c), key, c.Query("default"))
	response.OK(c, gin.H{"key": key, "value": value})
}

type setPreferenceDTO struct {
	Value string `json:"value" binding:"required"`
}

// PUT /preferences/:key writes a raw preference value. The language key is
// still validated against the supported set.
func (h *Handler) setPreference(c *gin.Context) {
	var dto setPreferenceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := c.Param("key")
	if key == KeyLanguage {
		var lang library.Language
		if err := json.Unmarshal([]byte(dto.Value), &lang); err != nil {
			lang = library.Language(dto.Value)
		}
		if !library.Supported(lang) {
			response.UnprocessableEntity(c, "unsupported language: "+dto.Value)
			return
		}
	}
	h.svc.Set(c.Request.Context(), clientID(c), key, dto.Value)
	response.OK(c, gin.H{"key": key, "value": dto.Value})
}

func (h *Handler) listBookmarks(c *gin.Context) {
	response.OK(c, h.svc.Bookmarks(c.Request.Context(), clientID(c)))
}

func (h *Handler) resolvedBookmarks(c *gin.Context) {
	catalog, err := h.catalog.Load(c.Request.Context())
	if err != nil {
		response.BadGateway(c, err.Error())
		return
	}
	response.OK(c, h.svc.ResolveBookmarks(c.Request.Context(), clientID(c), catalog))
}

func (h *Handler) addBookmark(c *gin.Context) {
	h.svc.AddBookmark(c.Request.Context(), clientID(c), c.Param("id"))
	response.Created(c, gin.H{"id": c.Param("id")})
}

func (h *Handler) removeBookmark(c *gin.Context) {
	h.svc.RemoveBookmark(c.Request.Context(), clientID(c), c.Param("id"))
	response.NoContent(c)
}

func (h *Handler) isBookmarked(c *gin.Context) {
	response.OK(c, gin.H{"bookmarked": h.svc.IsBookmarked(c.Request.Context(), clientID(c), c.Param("id"))})
}

package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sushilduseja/saarthi/internal/config"
	"github.com/sushilduseja/saarthi/internal/middleware"
	"github.com/sushilduseja/saarthi/internal/modules/audio"
	"github.com/sushilduseja/saarthi/internal/modules/flows"
	"github.com/sushilduseja/saarthi/internal/modules/gateway"
	"github.com/sushilduseja/saarthi/internal/modules/library"
	"github.com/sushilduseja/saarthi/internal/modules/preference"
	pkgredis "github.com/sushilduseja/saarthi/internal/pkg/redis"
	"github.com/sushilduseja/saarthi/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "saarthi",
		"version":  "1.0.0",
		"homepage": "https://github.com/sushilduseja/saarthi",
	}

	api := r.Group(apiPrefix)
	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	// Content catalog
	librarySvc := library.NewService(a.cfg.Content, a.logger)
	library.NewHandler(librarySvc).RegisterRoutes(api)

	// Preferences, fanned out to the client's other tabs through the hub.
	prefSvc := preference.NewService(preference.NewGormKV(a.db), a.logger)
	prefSvc.Subscribe(a.hub.BroadcastPreference)
	preference.NewHandler(prefSvc, librarySvc).RegisterRoutes(api)

	// Generation endpoints burn provider quota, so they are rate limited.
	limited := api.Group("", middleware.RateLimit(rc.Raw(), 30, time.Minute))

	flowsSvc := a.buildFlowService()
	flows.NewHandler(flowsSvc).RegisterRoutes(limited)

	audioSvc := a.buildAudioService()
	audio.NewHandler(audioSvc).RegisterRoutes(limited)

	// Cross-tab sync socket
	gateway.RegisterRoutes(r.Group(""), a.hub)
}

func (a *App) buildFlowService() *flows.Service {
	text, err := flows.NewTextGenerator(a.cfg.AI)
	if err != nil {
		a.logger.Warn("text generation unavailable", zap.Error(err))
		text = unavailableTextGenerator{err: err}
	}

	image, err := flows.NewImageGenerator(a.cfg.AI)
	if err != nil {
		a.logger.Warn("image generation unavailable", zap.Error(err))
		image = nil
	}

	return flows.NewService(text, image, a.cfg.AI.ChatHistoryWindow, a.logger)
}

func (a *App) buildAudioService() *audio.Service {
	ttl := time.Duration(a.cfg.Audio.SignedURLTTLMinutes) * time.Minute

	if !a.cfg.AudioConfigured() {
		a.logger.Warn("audio narration disabled: s3 bucket not configured")
		return audio.NewService(nil, nil, ttl, a.logger)
	}

	store, err := audio.NewS3Store(a.cfg.S3)
	if err != nil {
		a.logger.Warn("audio narration disabled", zap.Error(err))
		return audio.NewService(nil, nil, ttl, a.logger)
	}

	apiKey, endpoint := speechProvider(a.cfg.AI)
	synth, err := audio.NewOpenAISpeech(apiKey, endpoint, a.cfg.Audio)
	if err != nil {
		a.logger.Warn("audio narration disabled", zap.Error(err))
		return audio.NewService(nil, nil, ttl, a.logger)
	}

	return audio.NewService(store, synth, ttl, a.logger)
}

// speechProvider picks credentials for the speech endpoint from the first
// enabled provider that can speak the OpenAI audio API.
func speechProvider(cfg config.AIConfig) (apiKey, endpoint string) {
	for _, provider := range cfg.Providers {
		if !provider.Enabled {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(provider.Type), "anthropic") {
			continue
		}
		return provider.APIKey, provider.Endpoint
	}
	return "", ""
}

// unavailableTextGenerator keeps the flow routes mounted when no provider is
// configured; every call reports the configuration error.
type unavailableTextGenerator struct{ err error }

func (u unavailableTextGenerator) GenerateText(_ context.Context, _ flows.TextRequest) (string, error) {
	return "", u.err
}

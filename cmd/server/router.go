package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/ads"
	"github.com/edaterlove/adboard/internal/checkout"
	"github.com/edaterlove/adboard/internal/middleware"
	"github.com/edaterlove/adboard/internal/webhooks"
	"github.com/edaterlove/adboard/pkg/response"
)

type routerDeps struct {
	ads          *ads.Handler
	checkout     *checkout.Handler
	webhook      *webhooks.Handler
	corsOrigins  string
	directCreate bool
	logger       *zap.Logger
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(d.corsOrigins))
	router.Use(middleware.Logger(d.logger))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ads", d.ads.List)
	if d.directCreate {
		router.POST("/create-ad", d.ads.Create)
	}
	router.POST("/create-checkout", d.checkout.Create)

	// Signature is checked in the handler against the raw body.
	router.POST("/webhook", d.webhook.Handle)

	return router
}

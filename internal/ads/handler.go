package ads

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/models"
	"github.com/edaterlove/adboard/pkg/response"
	"github.com/edaterlove/adboard/pkg/utils"
)

const (
	msgFetchFailed  = "Failed to fetch ads."
	msgCreateFailed = "Failed to create ad."
	msgBadBody      = "Request body must be a JSON object."
)

// CreateResponse is the body of a successful POST /create-ad.
type CreateResponse struct {
	Success bool            `json:"success"`
	Ad      models.PublicAd `json:"ad"`
}

// Handler handles the ad board endpoints.
type Handler struct {
	cache  *Cache
	store  Gateway
	logger *zap.Logger
}

// NewHandler creates an ads handler.
func NewHandler(cache *Cache, store Gateway, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cache: cache, store: store, logger: logger}
}

// List handles GET /ads. The body is a bare array of {id, message, createdAt}.
func (h *Handler) List(c *gin.Context) {
	list, err := h.cache.GetAds(c.Request.Context())
	if err != nil {
		h.logger.Error("list ads failed", zap.Error(err))
		response.Internal(c, msgFetchFailed)
		return
	}
	c.JSON(http.StatusOK, models.PublicAds(list))
}

// Create handles POST /create-ad: validate, store as paid, then drop the cached list.
func (h *Handler) Create(c *gin.Context) {
	sub, err := DecodeSubmission(c.Request.Body)
	if err != nil {
		response.BadRequest(c, msgBadBody)
		return
	}
	if verr := Validate(sub); verr != nil {
		response.BadRequest(c, verr.Message)
		return
	}
	sub = sub.Normalize()

	ad, err := h.store.CreateAd(c.Request.Context(), models.NewAd{
		Message: sub.Message,
		Link:    sub.Link,
		Email:   sub.Email,
		Paid:    true,
	})
	if err != nil {
		h.logger.Error("create ad failed",
			zap.Error(err),
			zap.String("email_hash", utils.HashEmail(sub.Email)),
		)
		response.Internal(c, msgCreateFailed)
		return
	}
	h.cache.Invalidate()

	h.logger.Info("ad created",
		zap.String("ad_id", ad.ID),
		zap.String("email_hash", utils.HashEmail(sub.Email)),
	)
	c.JSON(http.StatusOK, CreateResponse{Success: true, Ad: ad.Public()})
}

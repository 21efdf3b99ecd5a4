package handler

import (
	"strconv"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultRecommendationLimit = 10

// RecommendationHandler proxies the external scoring service. Recommended
// product IDs are returned as-is; clients resolve them against the catalog.
type RecommendationHandler struct {
	BaseHandler
	recommender port.Recommender
}

func NewRecommendationHandler(recommender port.Recommender, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler: BaseHandler{Logger: logger},
		recommender: recommender,
	}
}

// ForUser returns ranked recommendations for the authenticated user.
func (h *RecommendationHandler) ForUser(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	recs, err := h.recommender.ForUser(c.Request.Context(), userID.String(), h.limit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"recommendations": recs})
}

// SimilarProducts returns products similar to the given one.
func (h *RecommendationHandler) SimilarProducts(c *gin.Context) {
	productID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	recs, err := h.recommender.SimilarProducts(c.Request.Context(), productID.String(), h.limit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"similar_products": recs})
}

// Train triggers a model training run. Admin only.
func (h *RecommendationHandler) Train(c *gin.Context) {
	result, err := h.recommender.Train(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Accuracy reports the current model accuracy.
func (h *RecommendationHandler) Accuracy(c *gin.Context) {
	result, err := h.recommender.Accuracy(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *RecommendationHandler) limit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecommendationLimit)))
	if err != nil || limit < 1 || limit > 50 {
		return defaultRecommendationLimit
	}
	return limit
}

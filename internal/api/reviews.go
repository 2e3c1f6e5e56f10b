package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finalproject_backend/internal/middleware"
	"finalproject_backend/internal/model"
	"finalproject_backend/internal/service"
	"finalproject_backend/pkg/auth"
	"finalproject_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type reviewRoutes struct {
	rs    service.ReviewServiceI
	qs    service.QuestServiceI
	clock DayClock
}

func NewReviewRoutes(handler *gin.RouterGroup, rs service.ReviewServiceI, qs service.QuestServiceI, a *auth.TelegramAuth, authz *middleware.Authorization, clock DayClock) {
	r := &reviewRoutes{rs: rs, qs: qs, clock: clock}

	reviews := handler.Group("/reviews")
	reviews.Use(a.TelegramAuthMiddleware())
	{
		reviews.POST("/", authz.MemberOnly(), r.CreateReview)
		reviews.GET("/:review_no", r.GetReview)
		reviews.PATCH("/:review_no", authz.MemberOnly(), r.UpdateReview)
		reviews.DELETE("/:review_no", authz.MemberOnly(), r.DeleteReview)
	}

	contents := handler.Group("/contents/:contents_id/reviews")
	contents.Use(a.TelegramAuthMiddleware())
	{
		contents.GET("", r.ListReviewsByContents)
		contents.GET("/:login_id", r.GetMyReview)
	}
}

type CreateReviewRequest struct {
	ContentsID int64  `json:"contents_id" binding:"required,gt=0"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Text       string `json:"text" binding:"required"`
	Spoiler    bool   `json:"spoiler"`
}

type CreateReviewResponse struct {
	ReviewNo int64 `json:"review_no"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Text    *string `json:"text" binding:"omitempty,min=1"`
	Spoiler *bool   `json:"spoiler"`
}

type ReviewResponse struct {
	ReviewNo   int64     `json:"review_no"`
	LoginID    string    `json:"login_id"`
	ContentsID int64     `json:"contents_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	Spoiler    bool      `json:"spoiler"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newReviewResponse(review *model.Review) ReviewResponse {
	return ReviewResponse{
		ReviewNo:   review.ReviewNo,
		LoginID:    review.LoginID,
		ContentsID: review.ContentsID,
		Rating:     review.Rating,
		Text:       review.Text,
		Spoiler:    review.Spoiler,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

func (r *reviewRoutes) CreateReview(c *gin.Context) {
	log := logger.Logger()

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	review := &model.Review{
		LoginID:    c.GetString(middleware.MemberIDKey),
		ContentsID: req.ContentsID,
		Rating:     req.Rating,
		Text:       req.Text,
		Spoiler:    req.Spoiler,
	}

	if err := r.rs.CreateReview(c.Request.Context(), review); err != nil {
		log.Error("failed to create review", zap.Error(err), zap.String("member_id", review.LoginID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	r.recordReviewQuest(c, review.LoginID)

	c.JSON(http.StatusCreated, CreateReviewResponse{ReviewNo: review.ReviewNo})
}

// recordReviewQuest counts a stored review toward the daily review quest. The
// review stays created when this fails.
func (r *reviewRoutes) recordReviewQuest(c *gin.Context, memberID string) {
	err := r.qs.IncreaseProgress(c.Request.Context(), memberID, model.QuestTypeReview, r.clock.Today())
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUnknownQuestType):
		// no review quest configured
	default:
		logger.Logger().Warn("failed to record review quest progress",
			zap.Error(err),
			zap.String("member_id", memberID),
			zap.String("quest_type", model.QuestTypeReview))
	}
}

func (r *reviewRoutes) GetReview(c *gin.Context) {
	log := logger.Logger()

	reviewNo, ok := parseIDParam(c, "review_no")
	if !ok {
		return
	}

	review, err := r.rs.GetReview(c.Request.Context(), reviewNo)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		log.Error("failed to get review", zap.Error(err), zap.Int64("review_no", reviewNo))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review"})
		return
	}

	c.JSON(http.StatusOK, newReviewResponse(review))
}

func (r *reviewRoutes) UpdateReview(c *gin.Context) {
	log := logger.Logger()

	reviewNo, ok := parseIDParam(c, "review_no")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := model.ReviewPatch{
		Rating:  req.Rating,
		Text:    req.Text,
		Spoiler: req.Spoiler,
	}
	if patch.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := r.rs.UpdateReview(c.Request.Context(), reviewNo, patch); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		log.Error("failed to update review", zap.Error(err), zap.Int64("review_no", reviewNo))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *reviewRoutes) DeleteReview(c *gin.Context) {
	log := logger.Logger()

	reviewNo, ok := parseIDParam(c, "review_no")
	if !ok {
		return
	}

	if err := r.rs.DeleteReview(c.Request.Context(), reviewNo); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		log.Error("failed to delete review", zap.Error(err), zap.Int64("review_no", reviewNo))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (r *reviewRoutes) ListReviewsByContents(c *gin.Context) {
	log := logger.Logger()

	contentsID, ok := parseIDParam(c, "contents_id")
	if !ok {
		return
	}

	reviews, err := r.rs.ListReviewsByContents(c.Request.Context(), contentsID)
	if err != nil {
		log.Error("failed to list reviews", zap.Error(err), zap.Int64("contents_id", contentsID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = newReviewResponse(review)
	}

	c.JSON(http.StatusOK, out)
}

func (r *reviewRoutes) GetMyReview(c *gin.Context) {
	log := logger.Logger()

	contentsID, ok := parseIDParam(c, "contents_id")
	if !ok {
		return
	}
	loginID := c.Param("login_id")

	review, err := r.rs.GetMyReview(c.Request.Context(), loginID, contentsID)
	if err != nil {
		log.Error("failed to get review",
			zap.Error(err),
			zap.String("member_id", loginID),
			zap.Int64("contents_id", contentsID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review"})
		return
	}

	if review == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, newReviewResponse(review))
}

// parseIDParam reads a positive integer path parameter, answering 400 when it
// is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		logger.Logger().Info("failed to parse path parameter", zap.String("param", name))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

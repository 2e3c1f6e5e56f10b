package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"finalproject_backend/internal/model"
	"finalproject_backend/internal/service"
	"finalproject_backend/pkg/auth"
	"finalproject_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type memberRoutes struct {
	ms service.MemberServiceI
}

func NewMemberRoutes(handler *gin.RouterGroup, ms service.MemberServiceI, a *auth.TelegramAuth) {
	r := &memberRoutes{ms: ms}
	h := handler.Group("/members")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/", r.RegisterMember)
		h.GET("/me", r.GetMe)
	}
}

type RegisterMemberRequest struct {
	Nickname string `json:"nickname"`
}

type MemberResponse struct {
	MemberID  string    `json:"member_id"`
	Nickname  string    `json:"nickname"`
	Point     int       `json:"point"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *memberRoutes) RegisterMember(c *gin.Context) {
	log := logger.Logger()

	var req RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, ok := auth.UserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = user.Username
	}

	m := &model.Member{
		MemberID: user.MemberID(),
		Nickname: nickname,
	}

	if err := r.ms.RegisterMember(c.Request.Context(), m); err != nil {
		if errors.Is(err, service.ErrMemberAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "member already exists"})
			return
		}
		log.Error("failed to register member", zap.Error(err), zap.String("member_id", m.MemberID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register member"})
		return
	}

	c.JSON(http.StatusCreated, MemberResponse{
		MemberID:  m.MemberID,
		Nickname:  m.Nickname,
		Point:     m.Point,
		CreatedAt: m.CreatedAt,
	})
}

func (r *memberRoutes) GetMe(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.UserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	member, err := r.ms.GetMember(c.Request.Context(), user.MemberID())
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		log.Error("failed to get member", zap.Error(err), zap.String("member_id", user.MemberID()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get member"})
		return
	}

	c.JSON(http.StatusOK, MemberResponse{
		MemberID:  member.MemberID,
		Nickname:  member.Nickname,
		Point:     member.Point,
		CreatedAt: member.CreatedAt,
	})
}

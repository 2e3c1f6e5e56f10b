package api

import (
	"errors"
	"net/http"

	"finalproject_backend/internal/middleware"
	"finalproject_backend/internal/model"
	"finalproject_backend/internal/service"
	"finalproject_backend/pkg/auth"
	"finalproject_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// serverTrackedQuests advance only through the action they count, never
// through the progress route.
var serverTrackedQuests = map[string]bool{
	model.QuestTypeReview: true,
}

type questRoutes struct {
	qs    service.QuestServiceI
	clock DayClock
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI, a *auth.TelegramAuth, authz *middleware.Authorization, clock DayClock) {
	r := &questRoutes{qs: qs, clock: clock}
	h := handler.Group("/quests")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("", r.GetQuestList)
		h.POST("/:type/progress", authz.MemberOnly(), r.IncreaseProgress)
		h.POST("/:type/claim", authz.MemberOnly(), r.ClaimReward)
	}
}

type QuestResponse struct {
	Type          string `json:"quest_type"`
	Title         string `json:"title"`
	Target        int    `json:"target"`
	Reward        int    `json:"reward"`
	CurrentCount  int    `json:"current_count"`
	IsDone        bool   `json:"is_done"`
	RewardClaimed bool   `json:"reward_claimed"`
}

type QuestListResponse struct {
	Day    string          `json:"day"`
	Quests []QuestResponse `json:"quests"`
}

func (r *questRoutes) GetQuestList(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.UserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	day := r.clock.Today()
	views, err := r.qs.GetQuestList(c.Request.Context(), user.MemberID(), day)
	if err != nil {
		log.Error("failed to get quest list", zap.Error(err), zap.String("member_id", user.MemberID()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quest list"})
		return
	}

	out := QuestListResponse{
		Day:    day.String(),
		Quests: make([]QuestResponse, len(views)),
	}
	for i, v := range views {
		out.Quests[i] = QuestResponse{
			Type:          v.Type,
			Title:         v.Title,
			Target:        v.Target,
			Reward:        v.Reward,
			CurrentCount:  v.CurrentCount,
			IsDone:        v.IsDone,
			RewardClaimed: v.RewardClaimed,
		}
	}

	c.JSON(http.StatusOK, out)
}

func (r *questRoutes) IncreaseProgress(c *gin.Context) {
	log := logger.Logger()

	memberID := c.GetString(middleware.MemberIDKey)
	questType := c.Param("type")

	if serverTrackedQuests[questType] {
		c.JSON(http.StatusForbidden, gin.H{"error": "progress for this quest is recorded by the server"})
		return
	}

	err := r.qs.IncreaseProgress(c.Request.Context(), memberID, questType, r.clock.Today())
	if err != nil {
		if errors.Is(err, service.ErrUnknownQuestType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown quest type"})
			return
		}
		log.Error("failed to increase quest progress",
			zap.Error(err),
			zap.String("member_id", memberID),
			zap.String("quest_type", questType))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to increase quest progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

type ClaimRewardResponse struct {
	Reward int `json:"reward"`
}

func (r *questRoutes) ClaimReward(c *gin.Context) {
	log := logger.Logger()

	memberID := c.GetString(middleware.MemberIDKey)
	questType := c.Param("type")

	reward, err := r.qs.ClaimReward(c.Request.Context(), memberID, questType, r.clock.Today())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownQuestType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown quest type"})
		case errors.Is(err, service.ErrQuestNotCompletedOrAlreadyClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "quest not completed or reward already claimed"})
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		default:
			log.Error("failed to claim quest reward",
				zap.Error(err),
				zap.String("member_id", memberID),
				zap.String("quest_type", questType))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim quest reward"})
		}
		return
	}

	c.JSON(http.StatusOK, ClaimRewardResponse{Reward: reward})
}

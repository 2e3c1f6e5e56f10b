package middleware

import (
	"errors"
	"net/http"

	"finalproject_backend/internal/service"
	"finalproject_backend/pkg/auth"
	"finalproject_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const MemberIDKey = "member_id"

type Authorization struct {
	memberService service.MemberServiceI
}

func NewAuthorization(memberService service.MemberServiceI) *Authorization {
	return &Authorization{
		memberService: memberService,
	}
}

// MemberOnly lets the request through only when the authenticated Telegram
// user has registered as a member. It must run after TelegramAuthMiddleware.
func (a *Authorization) MemberOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		telegramUser, ok := auth.UserFromContext(c)
		if !ok {
			log.Error("telegram user data not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		member, err := a.memberService.GetMember(c.Request.Context(), telegramUser.MemberID())
		if err != nil {
			if errors.Is(err, service.ErrMemberNotFound) {
				log.Info("non member access attempt to member endpoint",
					zap.Int64("telegram_id", telegramUser.ID))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "member registration required"})
				return
			}
			log.Error("failed to get member data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(MemberIDKey, member.MemberID)
		c.Next()
	}
}

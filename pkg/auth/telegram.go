package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finalproject_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	initdata "github.com/telegram-mini-apps/init-data-golang"
	"go.uber.org/zap"
)

const (
	expTime = 24 * time.Hour

	// ContextKey is where the middleware stores *TelegramUserData.
	ContextKey = "telegram_user"
)

var ErrMissingUser = errors.New("telegram user is missing in init data")

type TelegramAuth struct {
	botToken  string
	debugMode bool
}

func NewTelegramAuth(botToken string, debugMode bool) *TelegramAuth {
	return &TelegramAuth{
		botToken:  botToken,
		debugMode: debugMode,
	}
}

func (t *TelegramAuth) TelegramAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Telegram ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		initData := strings.TrimPrefix(authHeader, "Telegram ")
		if !t.debugMode {
			if err := initdata.Validate(initData, t.botToken, expTime); err != nil {
				log.Info("invalid telegram init data", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram auth data"})
				return
			}
		}

		telegramUserData, err := ExtractTelegramData(initData)
		if err != nil {
			log.Info("failed to extract telegram data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram data"})
			return
		}

		c.Set(ContextKey, telegramUserData)
		c.Next()
	}
}

func (t *TelegramAuth) GetBotToken() string {
	return t.botToken
}

type TelegramUserData struct {
	ID       int64
	Username string
	AuthDate time.Time
}

// MemberID is the login id the rest of the service keys users by.
func (d *TelegramUserData) MemberID() string {
	return strconv.FormatInt(d.ID, 10)
}

// UserFromContext returns the caller stored by TelegramAuthMiddleware.
func UserFromContext(c *gin.Context) (*TelegramUserData, bool) {
	v, exists := c.Get(ContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*TelegramUserData)
	return user, ok
}

func ExtractTelegramData(initData string) (*TelegramUserData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, err
	}

	authDateUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, err
	}

	var userData struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}

	if err := json.Unmarshal([]byte(values.Get("user")), &userData); err != nil {
		return nil, err
	}
	if userData.ID == 0 {
		return nil, ErrMissingUser
	}

	return &TelegramUserData{
		ID:       userData.ID,
		Username: userData.Username,
		AuthDate: time.Unix(authDateUnix, 0),
	}, nil
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/common/logger"
)

const telegramUserIDKey = "telegram_user_id"

// TelegramInitData authenticates Telegram Mini App callers. The init-data
// string is read from the X-Telegram-Init-Data header, falling back to the
// init_data query parameter. On success the Telegram user id is stored in
// the context; see TelegramUserID.
func TelegramInitData(token string, expIn time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			SendError(c, errors.New(errors.ErrCodeUnauthorized, "Telegram authentication is not configured"))
			return
		}

		raw := c.GetHeader("X-Telegram-Init-Data")
		if raw == "" {
			raw = c.Query("init_data")
		}
		if raw == "" {
			SendError(c, errors.New(errors.ErrCodeUnauthorized, "Telegram init data required"))
			return
		}

		if err := initdata.Validate(raw, token, expIn); err != nil {
			logger.Debug().Err(err).Str("request_id", GetRequestID(c)).Msg("init data validation failed")
			SendError(c, errors.Wrap(err, errors.ErrCodeUnauthorized, "Invalid init data"))
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			SendError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Malformed init data"))
			return
		}
		if parsed.User.ID == 0 {
			SendError(c, errors.New(errors.ErrCodeUnauthorized, "Init data carries no user"))
			return
		}

		SetTelegramUserID(c, parsed.User.ID)
		c.Next()
	}
}

// SetTelegramUserID stores an authenticated Telegram user id in the context.
func SetTelegramUserID(c *gin.Context, id int64) {
	c.Set(telegramUserIDKey, id)
}

// TelegramUserID returns the id stored by TelegramInitData.
func TelegramUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(telegramUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

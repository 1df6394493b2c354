package middleware

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"TandaXN/config"
)

const sessionName = "txn_session"

// SessionMiddleware cookie 会话，pending invite 的单槽存储放在这里。
// 会话签名用 SESSION_SECRET，cookie 本身不含敏感数据。
func SessionMiddleware() app.HandlerFunc {
	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   config.Cfg.IsProduction(),
	})

	return sessions.New(sessionName, store)
}

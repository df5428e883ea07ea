package contextkeys

type contextKey string

const (
	// SessionIDKey — ключ, под которым middleware кладет ID сессии дашборда
	// в контекст запроса.
	SessionIDKey contextKey = "sessionID"
)

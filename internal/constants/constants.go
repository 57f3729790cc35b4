package constants

const (
	// SessionCookieName is the console session cookie.
	SessionCookieName = "task_session"

	// SessionKeyUserID holds the logged-in account id inside the session.
	SessionKeyUserID = "user_id"

	// ContextKeyPrincipal holds the resolved *auth.Principal in the gin context.
	ContextKeyPrincipal = "principal"

	// ContextKeyTaskID holds the parsed :id route parameter.
	ContextKeyTaskID = "task_id"
)

// Flash levels used by the console.
const (
	FlashError   = "error"
	FlashWarning = "warning"
	FlashSuccess = "success"
)

const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the wire and form format of task due dates.
const DateLayout = "2006-01-02"

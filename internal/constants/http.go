package constants

// HTTP Header Names
const (
	HeaderContentType        = "Content-Type"
	HeaderAuthorization      = "Authorization"
	HeaderUserAgent          = "User-Agent"
	HeaderXRequestID         = "X-Request-ID"
	HeaderContentDisposition = "Content-Disposition"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

// Common HTTP Messages
const (
	MsgUnauthorized  = "Unauthorized"
	MsgForbidden     = "Access denied"
	MsgNotFound      = "Route not found"
	MsgInternalError = "Internal server error"
	MsgLoggedOut     = "Logged out successfully"
)

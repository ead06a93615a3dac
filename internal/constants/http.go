package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)

// AuthSchemeBearer prefixes the Authorization header value.
const AuthSchemeBearer = "Bearer "

// Common HTTP Error Messages
const (
	MsgUnauthorized    = "Unauthorized access"
	MsgForbidden       = "Access forbidden"
	MsgInternalError   = "Internal server error"
	MsgTooManyRequests = "Too many requests"
	MsgRouteNotFound   = "Route not found"
)

// MsgDeleted confirms a successful delete.
const MsgDeleted = "Resource deleted successfully"

package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Record status shared by users and categories
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Plant availability
const (
	PlantStatusAvailable    = "available"
	PlantStatusOutOfStock   = "out_of_stock"
	PlantStatusDiscontinued = "discontinued"
)

// Gin context keys set by the auth middleware
const (
	GinKeyUserID = "user_id"
	GinKeyRole   = "role"
)

// GinKeyRequestBody holds the request DTO decoded by the validation middleware.
const GinKeyRequestBody = "request_body"

package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)

// Pagination bounds for document and trash listings.
const (
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Account constraints.
const (
	MinUsernameLength = 2
	MaxUsernameLength = 50
	MinPasswordLength = 4
	MaxPasswordLength = 100

	MaxUserListSize = 500
)

// Roles are stored and compared in uppercase.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Trash purge settings.
const (
	PurgeBatchSize          = 200
	DefaultRetentionDays    = 30
	DefaultPurgeSchedule    = "0 3 * * *"
	DashboardLatestLimit    = 5
	DefaultMaxUploadMB      = 50
	DefaultTokenExpiryHours = 24 * 7
)

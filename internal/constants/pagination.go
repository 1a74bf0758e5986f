package constants

// Pagination Query Parameters
const (
	QueryParamPage      = "page"
	QueryParamLimit     = "limit"
	QueryParamSearch    = "search"
	QueryParamStatus    = "status"
	QueryParamSortBy    = "sortBy"
	QueryParamSortOrder = "sortOrder"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage      = "1"
	DefaultLimit     = "20"
	DefaultSearch    = ""
	DefaultStatus    = ""
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// Pagination Limits
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Sort Orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Status Filters
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnline   = "online"
)

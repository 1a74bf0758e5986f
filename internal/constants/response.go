package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldSuccess = "success"
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
)

// ListParams carries the parsed listing query for the admin user index.
type ListParams struct {
	Page      int
	Limit     int
	Offset    int
	Search    string
	Status    string
	SortBy    string
	SortOrder string
}

// ParseListParams parses pagination, search, filter and sort parameters
// with defaults and bounds applied.
func ParseListParams(c *gin.Context) ListParams {
	pageStr := c.DefaultQuery(QueryParamPage, DefaultPage)
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortOrder := c.DefaultQuery(QueryParamSortOrder, DefaultSortOrder)
	if sortOrder != OrderAsc {
		sortOrder = OrderDesc
	}

	return ListParams{
		Page:      page,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		Search:    c.DefaultQuery(QueryParamSearch, DefaultSearch),
		Status:    c.DefaultQuery(QueryParamStatus, DefaultStatus),
		SortBy:    c.DefaultQuery(QueryParamSortBy, DefaultSortBy),
		SortOrder: sortOrder,
	}
}

// Response Format Functions. Every endpoint answers with the
// {success, message?, ...} envelope.

func BuildSuccessResponse(message string) gin.H {
	return gin.H{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}

func BuildErrorResponse(message string, details any) gin.H {
	response := gin.H{
		ResponseFieldSuccess: false,
		ResponseFieldMessage: message,
	}
	if details != nil {
		response[ResponseFieldDetails] = details
	}
	return response
}

// BuildDataResponse merges payload fields into a success envelope.
func BuildDataResponse(message string, payload gin.H) gin.H {
	response := gin.H{
		ResponseFieldSuccess: true,
	}
	if message != "" {
		response[ResponseFieldMessage] = message
	}
	for key, value := range payload {
		response[key] = value
	}
	return response
}

package dto

// Response is the standard API envelope
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResponse is the envelope for paginated collections
type ListResponse struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Data    any   `json:"data"`
}

// NewSuccessResponse creates a success envelope carrying data
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewMessageResponse creates a success envelope carrying only a message
func NewMessageResponse(message string) Response {
	return Response{Success: true, Message: message}
}

// NewErrorResponse creates a failure envelope
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Message: message, Error: code}
}

// NewListResponse creates a paginated collection envelope. count is the
// number of items on this page, total across all pages.
func NewListResponse(data any, count int, total int64, page, pages int) ListResponse {
	return ListResponse{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	}
}

// ListQuery carries common list/pagination query parameters
type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status"`
}

// IDParam binds a uuid path parameter
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

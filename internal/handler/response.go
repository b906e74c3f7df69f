package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewEmptyStateResponse marks a missing-data state that is not an
// error: the client renders the message instead of the absent data.
func NewEmptyStateResponse(message string) *Response {
	return &Response{
		Status:  "empty",
		Message: message,
	}
}

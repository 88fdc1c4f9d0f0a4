package handler

type Response struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	From     string      `json:"from,omitempty"`
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

// NewRedirectResponse tells the client where to navigate; from
// preserves the intended destination across a login round trip.
func NewRedirectResponse(message, redirect, from string) *Response {
	return &Response{
		Status:   "error",
		Message:  message,
		Redirect: redirect,
		From:     from,
	}
}

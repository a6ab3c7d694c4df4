package response

// Response is the JSON envelope used by every API handler.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Ok(message string) Response {
	return Response{Status: "ok", Message: message}
}

func OkData(data any) Response {
	return Response{Status: "ok", Data: data}
}

func Error(message string) Response {
	return Response{Status: "error", Message: message}
}

package response

import (
	"fmt"
	"net/http"
)

// HTTPResponse is what a controller hands back to the route adapter.
type HTTPResponse struct {
	StatusCode int
	Body       any
}

// ErrorBody is the shape of every non-empty error response.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

const (
	wrongCredentials    = "Wrong credentials"
	internalServerError = "Internal Server Error"
)

func OK(body any) HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusOK, Body: body}
}

func Created(body any) HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusCreated, Body: body}
}

func BadRequest(err error) HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusBadRequest, Body: ErrorBody{Error: true, Message: err.Error()}}
}

// Unauthorized never says whether the email or the password was wrong.
func Unauthorized() HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusUnauthorized, Body: ErrorBody{Error: true, Message: wrongCredentials}}
}

func Conflict(err error) HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusConflict, Body: ErrorBody{Error: true, Message: err.Error()}}
}

// NotFound renders an empty object.
func NotFound() HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusNotFound, Body: map[string]any{}}
}

func TooManyRequests() HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusTooManyRequests, Body: ErrorBody{Error: true, Message: "Too many requests"}}
}

func InternalServerError() HTTPResponse {
	return HTTPResponse{StatusCode: http.StatusInternalServerError, Body: ErrorBody{Error: true, Message: internalServerError}}
}

// RouteNotFound points callers at the API documentation.
func RouteNotFound(docsURL string) HTTPResponse {
	return HTTPResponse{
		StatusCode: http.StatusNotFound,
		Body:       ErrorBody{Error: true, Message: fmt.Sprintf("Route not found, see the API documentation at %s", docsURL)},
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

// Request is the framework-free view of an HTTP request a controller sees.
// Query keeps the first value of each key.
type Request struct {
	Query     map[string]string
	Params    map[string]string
	Body      []byte
	RequestID string
}

// Controller turns a Request into a status code and JSON body.
type Controller interface {
	Handle(ctx context.Context, req Request) response.HTTPResponse
}

// ControllerFunc adapts a plain function or method value to Controller.
type ControllerFunc func(ctx context.Context, req Request) response.HTTPResponse

func (f ControllerFunc) Handle(ctx context.Context, req Request) response.HTTPResponse {
	return f(ctx, req)
}

// Adapt exposes a Controller as a gin handler.
func Adapt(ctrl Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := Request{
			Query:     make(map[string]string),
			Params:    make(map[string]string, len(c.Params)),
			RequestID: c.GetString("request_id"),
		}
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				req.Query[k] = v[0]
			}
		}
		for _, p := range c.Params {
			req.Params[p.Key] = p.Value
		}
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				writeResponse(c, response.BadRequest(apperr.InvalidParam("body")))
				return
			}
			req.Body = body
		}

		writeResponse(c, ctrl.Handle(c.Request.Context(), req))
	}
}

func writeResponse(c *gin.Context, res response.HTTPResponse) {
	if res.Body == nil {
		c.Status(res.StatusCode)
		return
	}
	c.JSON(res.StatusCode, res.Body)
}

// decodeBody fills dst from a JSON body. An empty body leaves dst untouched
// so schema validation reports the missing fields. A value of the wrong JSON
// type is reported against its top-level field.
func decodeBody(raw []byte, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.InvalidParam(strings.SplitN(typeErr.Field, ".", 2)[0])
		}
		return apperr.InvalidParam("body")
	}
	return nil
}

// validate runs the schema validator and turns a field failure into the
// matching MissingParam or InvalidParam.
func validate(v validation.SchemaValidator, in any) error {
	err := v.Validate(in)
	var fe *validation.FieldError
	if !errors.As(err, &fe) {
		return err
	}
	if fe.Missing {
		return apperr.MissingParam(fe.Field)
	}
	return apperr.InvalidParam(fe.Field)
}

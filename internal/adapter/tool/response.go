package tool

import (
	"encoding/json"
	"errors"

	"github.com/flight-search/flight-finder/internal/domain"
)

// errorBody is the uniform error payload. Context entries from the domain
// error are flattened next to code and message.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"-"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// MarshalJSON flattens the context map into the error object so callers see
// {code, message, field, ...} rather than a nested context key.
func (b errorBody) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Context)+2)
	for k, v := range b.Context {
		out[k] = v
	}
	out["code"] = b.Code
	out["message"] = b.Message
	return json.Marshal(out)
}

// marshalError renders any error as the uniform JSON error shape. Domain
// errors keep their code and context; everything else becomes INTERNAL_ERROR
// with a generic message so implementation details never leak.
func marshalError(err error) string {
	body := errorBody{
		Code:    domain.CodeInternalError,
		Message: "an internal error occurred",
	}
	var coded domain.Coded
	if errors.As(err, &coded) {
		body.Code = coded.DomainCode()
		body.Message = coded.DomainMessage()
		body.Context = coded.DomainContext()
	}

	data, merr := json.Marshal(errorResponse{Success: false, Error: body})
	if merr != nil {
		return `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"failed to encode error"}}`
	}
	return string(data)
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

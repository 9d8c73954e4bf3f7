// Package response конверт {success, data, error} для всех ответов API.
package response

import (
	"encoding/json"
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

type Output[T any] struct {
	Body Envelope[T]
}

func OK[T any](data T) *Output[T] {
	return &Output[T]{Body: Envelope[T]{Success: true, Data: data}}
}

// Status ответ без данных (DELETE)
type Status struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type StatusOutput struct {
	Body Status
}

func Done() *StatusOutput {
	return &StatusOutput{Body: Status{Success: true}}
}

// ErrorModel тело ошибки в том же конверте, что и успешные ответы
type ErrorModel struct {
	status  int
	Success bool     `json:"success"`
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (e *ErrorModel) Error() string {
	return e.Message
}

func (e *ErrorModel) GetStatus() int {
	return e.status
}

func init() {
	huma.NewError = NewError
}

func NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	return &ErrorModel{status: status, Message: msg, Details: details}
}

// Write пишет ошибку напрямую, для middleware
func Write(ctx huma.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(&ErrorModel{Message: msg})
}

// StatusOf статус ошибки, 500 если это не huma.StatusError
func StatusOf(err error) int {
	var se huma.StatusError
	if errors.As(err, &se) {
		return se.GetStatus()
	}
	return 500
}

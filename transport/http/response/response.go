package response

import (
	"encoding/json"
	"errors"
	"garagebook/shared/constant"
	"garagebook/shared/failure"
	"garagebook/shared/logger"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelopes. Every body is exactly one of {"data": ...}, {"error": "..."} or
// {"message": "..."}.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

const internalErrorMessage = "internal server error"

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError answers with the status and message of a *failure.Failure anywhere in err's
// chain. Any other error is a bug or an outage: it is logged and the client only sees a
// generic 500, so driver and SQL text never reach a customer.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		log.Error().Err(err).Msg("unhandled error reached the response writer")

		message := internalErrorMessage
		write(writer, http.StatusInternalServerError, Error{Error: &message})

		return
	}

	message := fail.Message
	write(writer, fail.Code, Error{Error: &message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown is returned while the server drains in-flight bookings.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

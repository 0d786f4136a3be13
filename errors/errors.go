package errors

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a service failure; Raise maps it to an HTTP status.
type Kind int

const (
	KindUnauthorized Kind = iota
	KindForbidden
	KindNotFound
	KindBadRequest
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or KindInternal for anything that did not
// originate in the service layer (driver failures and the like).
func KindOf(err error) Kind {
	if serviceErr, ok := err.(*Error); ok {
		return serviceErr.Kind
	}
	return KindInternal
}

// Raise renders a service error through the matching raiser.
func Raise(context *fiber.Ctx, err error) error {
	switch KindOf(err) {
	case KindUnauthorized:
		return RaisePermissionsError(context, err.Error())
	case KindForbidden:
		return RaiseForbiddenError(context, err.Error())
	case KindNotFound:
		return RaiseNotFoundError(context, err.Error())
	case KindBadRequest:
		return RaiseBadRequestError(context, err.Error())
	case KindConflict:
		return RaiseConflictError(context, err.Error())
	default:
		return RaiseInternalServerError(context, err.Error())
	}
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseForbiddenError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "operation not allowed", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict with current state", data)
}

package controllers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"usertable-api/internal/service"
)

// statusFor maps a service error kind to an HTTP status. Only infrastructure
// failures leave the 400 family.
func statusFor(kind service.Kind) int {
	if kind == service.KindUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// levelFor keeps caller mistakes at the level RequestLogger uses for 4xx.
func levelFor(kind service.Kind) zerolog.Level {
	switch kind {
	case service.KindValidation, service.KindNotFound:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// logFailure logs err with the operation and column recorded by the service.
func logFailure(op string, err error) {
	kind := service.KindOf(err)
	event := log.WithLevel(levelFor(kind)).Err(err).Str("op", op).Stringer("kind", kind)
	var se *service.Error
	if errors.As(err, &se) && se.Column != "" {
		event = event.Str("column", se.Column)
	}
	event.Msg("request failed")
}

// respondError logs err and writes "<prefix>: <message>" as plain text.
func respondError(c *gin.Context, op, prefix string, err error) {
	logFailure(op, err)
	c.String(statusFor(service.KindOf(err)), prefix+": "+err.Error())
}

// bindingMessage turns binding failures into "<param> is required" style text.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, lowerFirst(fe.Field())+" is "+fe.Tag())
	}
	return strings.Join(msgs, ", ")
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

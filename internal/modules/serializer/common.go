package serializer

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// SetLogger sets the package logger used when rendering error envelopes.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response is the success envelope.
type Response struct {
	Data interface{} `json:"data,omitempty"`
	Msg  string      `json:"msg,omitempty"`
}

// ErrorBody matches the envelope the dashboard frontend expects:
// {"error":{"code","message","timestamp"}}.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Detail    string `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func Err(code, message string, err error) ErrorResponse {
	body := ErrorBody{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		log.Debug("request error", zap.String("code", code), zap.Error(err))
		// development mode, show error detail
		if gin.Mode() != gin.ReleaseMode {
			body.Detail = fmt.Sprintf("%+v", err)
		}
	}
	return ErrorResponse{Error: body}
}

func ParamErr(msg string, err error) ErrorResponse {
	if msg == "" {
		msg = "parámetros inválidos"
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		msg = fmt.Sprintf("%s: campo '%s' no cumple la regla '%s'", msg, verrs[0].Field(), verrs[0].Tag())
	}
	return Err("VALIDATION_ERROR", msg, err)
}

func NotFoundErr(msg string, err error) ErrorResponse {
	if msg == "" {
		msg = "recurso no encontrado"
	}
	return Err("NOT_FOUND", msg, err)
}

func DBErr(msg string, err error) ErrorResponse {
	if msg == "" {
		msg = "error de base de datos"
	}
	return Err("DATABASE_ERROR", msg, err)
}

func AuthErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "no autorizado"
	}
	return Err("UNAUTHORIZED", msg, nil)
}

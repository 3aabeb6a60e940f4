// internal/server/handlers_command.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
	"github.com/oogway7h/ShopIA-web/internal/common/validation"
	"github.com/oogway7h/ShopIA-web/internal/nlp"
)

const maxCommandBody = 4 << 10

// handleComandoVoz resolves one voice/text command into a frontend action.
func (s *Server) handleComandoVoz(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCommandBody))
	if err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError("cuerpo de la petición ilegible"))
		return
	}

	result, err := validation.Validate(validation.VoiceCommandSchema, body)
	if err != nil || !result.Valid {
		s.respondError(c, errors.NewInvalidRequestFormatError(schemaDetails(result)))
		return
	}

	var payload struct {
		Texto string `json:"texto"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		s.respondError(c, errors.NewInvalidRequestFormatError(err.Error()))
		return
	}

	start := time.Now()
	action := s.interpreter.Interpret(payload.Texto, s.now())

	metrics.CommandsProcessed.WithLabelValues(string(action.Kind)).Inc()
	intent := string(action.Intent)
	if intent == "" {
		intent = "none"
	}
	metrics.CommandIntents.WithLabelValues(intent).Inc()
	metrics.CommandDuration.WithLabelValues(string(action.Kind)).Observe(time.Since(start).Seconds())

	status := http.StatusOK
	if action.Kind == nlp.ActionError && action.Message == nlp.MsgNotInitialized {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, action.Payload())
}

func schemaDetails(result *validation.ValidationResult) string {
	if result == nil {
		return ""
	}
	parts := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

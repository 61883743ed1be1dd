package handler

import (
	"strconv"
	"time"

	auditapp "github.com/dovoc/backend/internal/application/audit"
	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLogLimit = 100

// LogHandler exposes the security audit log to administrators
type LogHandler struct {
	BaseHandler
	logs *auditapp.LogService
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(logs *auditapp.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// LogEntryResponse represents an audit entry in API responses
type LogEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// List handles GET /logs (admin). Entries come back newest first;
// limit defaults to 100 and is capped by the retention window.
func (h *LogHandler) List(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit value")
			return
		}
		limit = parsed
	}

	entries, err := h.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]LogEntryResponse, len(entries))
	for i := range entries {
		responses[i] = toLogEntryResponse(&entries[i])
	}
	h.Success(c, responses)
}

func toLogEntryResponse(e *audit.Entry) LogEntryResponse {
	return LogEntryResponse{
		ID:        e.ID,
		Action:    string(e.Action),
		Actor:     e.Actor,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	}
}

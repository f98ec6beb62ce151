package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// TaskEventResponse is the payload of a server-sent dispatch event.
type TaskEventResponse struct {
	TaskID     string  `json:"taskId"`
	Outcome    string  `json:"outcome"`
	AssigneeID *string `json:"assigneeId,omitempty"`
	OccurredAt string  `json:"occurredAt"`
}

// StreamTaskEvents handles GET /api/v1/tasks/:task_id/events.
// It holds the connection open as a server-sent event stream and emits a
// single "outcome" event when the task's dispatch run finishes, then
// closes. A task can only finish once, so one event is all a stream
// ever carries. Clients that lose the connection fall back to polling
// GET /api/v1/tasks/:task_id.
func (s *Server) StreamTaskEvents(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("task_id"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	// Subscribe before touching the response so a notification published
	// between the query and the stream setup is not lost.
	notifications, unsubscribe := s.notifier.Subscribe(taskID)
	defer unsubscribe()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	select {
	case <-ctx.Request().Context().Done():
		return nil
	case notification, ok := <-notifications:
		if !ok {
			return nil
		}

		event := TaskEventResponse{
			TaskID:     notification.TaskID.String(),
			Outcome:    notification.Outcome.String(),
			OccurredAt: notification.OccurredAt.UTC().Format(time.RFC3339Nano),
		}
		if notification.AssigneeID != nil {
			assigneeID := notification.AssigneeID.String()
			event.AssigneeID = &assigneeID
		}

		payload, marshalErr := json.Marshal(event)
		if marshalErr != nil {
			s.logger.Error("failed to encode task event",
				"task_id", taskID,
				"error", marshalErr)
			return nil
		}

		if _, writeErr := fmt.Fprintf(response, "event: outcome\ndata: %s\n\n", payload); writeErr != nil {
			return nil
		}
		response.Flush()

		// Terminal outcome delivered; the stream is done.
		return nil
	}
}

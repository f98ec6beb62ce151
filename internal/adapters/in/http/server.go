// Package http exposes the dispatch REST API on Echo.
//
// Task and candidate registration, offer responses, and cancellation go
// through the command handlers; task reads go through the query handlers.
// Terminal dispatch results additionally stream over the events endpoint
// (see events.go) so requesters do not have to poll.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the dispatch HTTP API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTaskHandler       commands.CreateTaskCommandHandler
	createCandidateHandler  commands.CreateCandidateCommandHandler
	releaseCandidateHandler commands.ReleaseCandidateCommandHandler
	startDispatchHandler    commands.StartDispatchCommandHandler
	acceptOfferHandler      commands.AcceptOfferCommandHandler
	denyOfferHandler        commands.DenyOfferCommandHandler
	cancelDispatchHandler   commands.CancelDispatchCommandHandler

	// Query handlers
	getTaskHandler            queries.GetTaskQueryHandler
	getUnassignedTasksHandler queries.GetUnassignedTasksQueryHandler

	notifier *dispatch.Notifier
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The notifier feeds the per-task events stream.
func NewServer(
	createTaskHandler commands.CreateTaskCommandHandler,
	createCandidateHandler commands.CreateCandidateCommandHandler,
	releaseCandidateHandler commands.ReleaseCandidateCommandHandler,
	startDispatchHandler commands.StartDispatchCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	denyOfferHandler commands.DenyOfferCommandHandler,
	cancelDispatchHandler commands.CancelDispatchCommandHandler,
	getTaskHandler queries.GetTaskQueryHandler,
	getUnassignedTasksHandler queries.GetUnassignedTasksQueryHandler,
	notifier *dispatch.Notifier,
	logger *slog.Logger,
) *Server {
	return &Server{
		createTaskHandler:         createTaskHandler,
		createCandidateHandler:    createCandidateHandler,
		releaseCandidateHandler:   releaseCandidateHandler,
		startDispatchHandler:      startDispatchHandler,
		acceptOfferHandler:        acceptOfferHandler,
		denyOfferHandler:          denyOfferHandler,
		cancelDispatchHandler:     cancelDispatchHandler,
		getTaskHandler:            getTaskHandler,
		getUnassignedTasksHandler: getUnassignedTasksHandler,
		notifier:                  notifier,
		logger:                    logger,
	}
}

// RegisterRoutes attaches all API endpoints to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/tasks", s.CreateTask)
	api.GET("/tasks/unassigned", s.GetUnassignedTasks)
	api.GET("/tasks/:task_id", s.GetTask)
	api.GET("/tasks/:task_id/events", s.StreamTaskEvents)
	api.POST("/tasks/:task_id/accept", s.AcceptOffer)
	api.POST("/tasks/:task_id/deny", s.DenyOffer)
	api.POST("/tasks/:task_id/cancel", s.CancelDispatch)

	api.POST("/candidates", s.CreateCandidate)
	api.POST("/candidates/:candidate_id/release", s.ReleaseCandidate)
}

// ErrorResponse is the body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointResponse is the JSON representation of a geographic coordinate.
type GeoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Kind   string           `json:"kind"`
	Origin GeoPointResponse `json:"origin"`
}

// CreateCandidateRequest is the body of POST /api/v1/candidates.
type CreateCandidateRequest struct {
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Location GeoPointResponse `json:"location"`
}

// OfferResponseRequest is the body of the accept and deny endpoints.
type OfferResponseRequest struct {
	CandidateID string `json:"candidateId"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// TaskResponse is the read model of a single task.
type TaskResponse struct {
	ID         string           `json:"id"`
	Kind       string           `json:"kind"`
	Status     string           `json:"status"`
	AssigneeID *string          `json:"assigneeId,omitempty"`
	Origin     GeoPointResponse `json:"origin"`
}

// UnassignedTaskResponse is one element of the unassigned-tasks listing.
type UnassignedTaskResponse struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Origin    GeoPointResponse `json:"origin"`
	CreatedAt string           `json:"createdAt"`
}

// CreateTask handles POST /api/v1/tasks.
// It registers the task and immediately starts the offer cascade on a
// background goroutine; the response returns before an assignee is found.
func (s *Server) CreateTask(ctx echo.Context) error {
	var request CreateTaskRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := task.KindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	origin, err := kernel.NewGeoPoint(request.Origin.Latitude, request.Origin.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewCreateTaskCommand(taskID, kind, origin)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.createTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return internalError(ctx, "Failed to create task")
	}

	s.startDispatch(taskID)

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: taskID.String()})
}

// startDispatch launches the offer cascade for the task on its own
// goroutine. The cascade outlives the HTTP request, so it runs on a
// background context; its result reaches clients through the events
// stream and the outcome topic.
func (s *Server) startDispatch(taskID kernel.UUID) {
	cmd, err := commands.NewStartDispatchCommand(taskID)
	if err != nil {
		s.logger.Error("failed to construct dispatch command",
			"task_id", taskID,
			"error", err)
		return
	}

	go func() {
		if _, dispatchErr := s.startDispatchHandler.Handle(context.Background(), cmd); dispatchErr != nil {
			s.logger.Error("dispatch run failed",
				"task_id", taskID,
				"error", dispatchErr)
		}
	}()
}

// GetTask handles GET /api/v1/tasks/:task_id.
// It is the polling fallback for clients that do not hold an events stream.
func (s *Server) GetTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("task_id"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	query, err := queries.NewGetTaskQuery(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	found, err := s.getTaskHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Task not found")
		}
		return internalError(ctx, "Failed to retrieve task")
	}

	response := TaskResponse{
		ID:     found.ID.String(),
		Kind:   found.Kind.String(),
		Status: found.Status.String(),
		Origin: GeoPointResponse{
			Latitude:  found.Origin.Latitude(),
			Longitude: found.Origin.Longitude(),
		},
	}
	if found.AssigneeID != nil {
		assigneeID := found.AssigneeID.String()
		response.AssigneeID = &assigneeID
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUnassignedTasks handles GET /api/v1/tasks/unassigned.
func (s *Server) GetUnassignedTasks(ctx echo.Context) error {
	query := queries.NewGetUnassignedTasksQuery()

	tasks, err := s.getUnassignedTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve tasks")
	}

	response := make([]UnassignedTaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = UnassignedTaskResponse{
			ID:   t.ID.String(),
			Kind: t.Kind.String(),
			Origin: GeoPointResponse{
				Latitude:  t.Origin.Latitude(),
				Longitude: t.Origin.Longitude(),
			},
			CreatedAt: t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOffer handles POST /api/v1/tasks/:task_id/accept.
// A response that arrives after the offer window closed gets 409; the
// storage-arbitrated claim makes a duplicate acceptance impossible.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	taskID, candidateID, problem := s.bindOfferResponse(ctx)
	if problem != "" {
		return badRequest(ctx, problem)
	}

	cmd, err := commands.NewAcceptOfferCommand(taskID, candidateID)
	if err != nil {
		return badRequest(ctx, "Invalid offer response: "+err.Error())
	}

	if handleErr := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, commands.ErrNoPendingOffer) {
			return conflict(ctx, "Offer is no longer pending")
		}
		return internalError(ctx, "Failed to accept offer")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DenyOffer handles POST /api/v1/tasks/:task_id/deny.
func (s *Server) DenyOffer(ctx echo.Context) error {
	taskID, candidateID, problem := s.bindOfferResponse(ctx)
	if problem != "" {
		return badRequest(ctx, problem)
	}

	cmd, err := commands.NewDenyOfferCommand(taskID, candidateID)
	if err != nil {
		return badRequest(ctx, "Invalid offer response: "+err.Error())
	}

	if handleErr := s.denyOfferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, commands.ErrNoPendingOffer) {
			return conflict(ctx, "Offer is no longer pending")
		}
		return internalError(ctx, "Failed to deny offer")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDispatch handles POST /api/v1/tasks/:task_id/cancel.
// Cancelling a task that already reached a terminal state returns 409.
func (s *Server) CancelDispatch(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("task_id"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	cmd, err := commands.NewCancelDispatchCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid task ID")
	}

	if handleErr := s.cancelDispatchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		switch {
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return notFound(ctx, "Task not found")
		case errors.Is(handleErr, ports.ErrTaskAlreadyClaimed),
			errors.Is(handleErr, ports.ErrTaskAlreadyFinalized):
			return conflict(ctx, "Task already reached a terminal state")
		default:
			return internalError(ctx, "Failed to cancel dispatch")
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCandidate handles POST /api/v1/candidates.
func (s *Server) CreateCandidate(ctx echo.Context) error {
	var request CreateCandidateRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := task.KindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid candidate data: "+err.Error())
	}

	location, err := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid candidate data: "+err.Error())
	}

	candidateID := kernel.NewUUID()
	cmd, err := commands.NewCreateCandidateCommand(candidateID, request.Name, kind, location)
	if err != nil {
		return badRequest(ctx, "Invalid candidate data: "+err.Error())
	}

	if handleErr := s.createCandidateHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return internalError(ctx, "Failed to create candidate")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: candidateID.String()})
}

// ReleaseCandidate handles POST /api/v1/candidates/:candidate_id/release.
// It marks the candidate available for offers again after it finished
// its current assignment.
func (s *Server) ReleaseCandidate(ctx echo.Context) error {
	candidateID, err := kernel.UUIDFromString(ctx.Param("candidate_id"))
	if err != nil {
		return badRequest(ctx, "Invalid candidate ID")
	}

	cmd, err := commands.NewReleaseCandidateCommand(candidateID)
	if err != nil {
		return badRequest(ctx, "Invalid candidate ID")
	}

	if handleErr := s.releaseCandidateHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return notFound(ctx, "Candidate not found")
		}
		return internalError(ctx, "Failed to release candidate")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// bindOfferResponse parses the task path parameter and the responder's
// candidate identity shared by the accept and deny endpoints. A non-empty
// problem string means the request was malformed.
func (s *Server) bindOfferResponse(ctx echo.Context) (taskID kernel.UUID, candidateID kernel.UUID, problem string) {
	taskID, err := kernel.UUIDFromString(ctx.Param("task_id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "Invalid task ID"
	}

	var request OfferResponseRequest
	if err := ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, "Invalid request body"
	}

	candidateID, err = kernel.UUIDFromString(request.CandidateID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "Invalid candidate ID"
	}

	return taskID, candidateID, ""
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

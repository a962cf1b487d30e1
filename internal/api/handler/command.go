package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskcrew/taskcrew/internal/api/middleware"
	"github.com/taskcrew/taskcrew/internal/api/response"
	"github.com/taskcrew/taskcrew/internal/api/validation"
	"github.com/taskcrew/taskcrew/internal/bot"
	"github.com/taskcrew/taskcrew/internal/notify"
	"github.com/taskcrew/taskcrew/internal/profile"
	"github.com/taskcrew/taskcrew/internal/task"
	"github.com/taskcrew/taskcrew/internal/team"
)

type commandRequest struct {
	CallerExternalID    string   `json:"callerExternalId"`
	CallerHandle        string   `json:"callerHandle"`
	CallerDisplayName   string   `json:"callerDisplayName"`
	Verb                string   `json:"verb"`
	Args                []string `json:"args"`
	RepliedToExternalID string   `json:"repliedToExternalId"`
	CallbackToken       string   `json:"callbackToken"`
}

type profileResponse struct {
	ID           string  `json:"id"`
	ExternalID   string  `json:"externalId"`
	Handle       string  `json:"handle"`
	DisplayName  string  `json:"displayName"`
	Role         string  `json:"role"`
	ActiveTeamID *string `json:"activeTeamId"`
}

type teamResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

type taskResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	TeamID     *string `json:"teamId"`
	AssignedTo string  `json:"assignedTo"`
	CreatedBy  string  `json:"createdBy"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

type commandResponse struct {
	ResultKind    string           `json:"resultKind"`
	Profile       *profileResponse `json:"profile,omitempty"`
	Target        *profileResponse `json:"target,omitempty"`
	Team          *teamResponse    `json:"team,omitempty"`
	Teams         []teamResponse   `json:"teams,omitempty"`
	Task          *taskResponse    `json:"task,omitempty"`
	Tasks         []taskResponse   `json:"tasks,omitempty"`
	Choices       []notify.Action  `json:"choices,omitempty"`
	Notifications []notify.Message `json:"notifications"`
}

func toProfileResponse(p *profile.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	resp := &profileResponse{
		ID:          p.ID.String(),
		ExternalID:  p.ExternalID,
		Handle:      p.Handle,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
	}
	if p.ActiveTeamID != nil {
		s := p.ActiveTeamID.String()
		resp.ActiveTeamID = &s
	}
	return resp
}

func toTeamResponse(t *team.Team) *teamResponse {
	if t == nil {
		return nil
	}
	return &teamResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedBy: t.CreatedBy.String(),
		CreatedAt: t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toTaskResponse(t *task.Task) *taskResponse {
	if t == nil {
		return nil
	}
	resp := &taskResponse{
		ID:         t.ID.String(),
		Title:      t.Title,
		AssignedTo: t.AssignedTo.String(),
		CreatedBy:  t.CreatedBy.String(),
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if t.TeamID != nil {
		s := t.TeamID.String()
		resp.TeamID = &s
	}
	return resp
}

func toCommandResponse(res *bot.Result) commandResponse {
	resp := commandResponse{
		ResultKind:    string(res.Kind),
		Profile:       toProfileResponse(res.Profile),
		Target:        toProfileResponse(res.Target),
		Team:          toTeamResponse(res.Team),
		Task:          toTaskResponse(res.Task),
		Choices:       res.Choices,
		Notifications: res.Notifications,
	}
	if resp.Notifications == nil {
		resp.Notifications = []notify.Message{}
	}
	for i := range res.Teams {
		resp.Teams = append(resp.Teams, *toTeamResponse(&res.Teams[i]))
	}
	for i := range res.Tasks {
		resp.Tasks = append(resp.Tasks, *toTaskResponse(&res.Tasks[i]))
	}
	return resp
}

// CommandHandler handles POST /commands, the single entry point the
// transport layer uses to run a normalized command through the engine.
type CommandHandler struct {
	engine     *bot.Engine
	dispatcher notify.Dispatcher
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(engine *bot.Engine, dispatcher notify.Dispatcher) *CommandHandler {
	return &CommandHandler{engine: engine, dispatcher: dispatcher}
}

// Handle handles POST /commands.
func (h *CommandHandler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCommandRequest(validation.CommandRequest{
		CallerExternalID: req.CallerExternalID,
		Verb:             req.Verb,
		CallbackToken:    req.CallbackToken,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	cmd := bot.Command{
		CallerExternalID:    req.CallerExternalID,
		CallerHandle:        req.CallerHandle,
		CallerDisplayName:   req.CallerDisplayName,
		Verb:                req.Verb,
		Args:                req.Args,
		RepliedToExternalID: req.RepliedToExternalID,
	}
	if req.CallbackToken != "" {
		action, err := bot.ParseActionToken(req.CallbackToken)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "MALFORMED_COMMAND", "Callback token not recognized", requestID)
			return
		}
		cmd.Action = &action
	}

	res, err := h.engine.Handle(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	// Responding does not wait on delivery; the notifications also ride
	// along in the response body for transports that deliver themselves.
	if len(res.Notifications) > 0 {
		go h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), res.Notifications)
	}

	response.Success(w, http.StatusOK, toCommandResponse(res), requestID)
}

func (h *CommandHandler) writeError(w http.ResponseWriter, err error, requestID string) {
	var validationErr *bot.ValidationError
	var storeErr *bot.StoreError

	switch {
	case errors.As(err, &validationErr):
		details := []validation.FieldError{{Field: validationErr.Field, Message: validationErr.Message}}
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", details, requestID)

	case errors.Is(err, bot.ErrMalformedCommand):
		response.Err(w, http.StatusBadRequest, "MALFORMED_COMMAND", "Command addressing not recognized", requestID)

	case errors.Is(err, bot.ErrPermissionDenied):
		// Fixed message; the required role is deliberately not leaked.
		response.Err(w, http.StatusForbidden, "PERMISSION_DENIED", "You are not allowed to do that", requestID)

	case errors.Is(err, bot.ErrUnknownCaller):
		response.Err(w, http.StatusNotFound, "UNKNOWN_CALLER", "Caller has not registered yet", requestID)

	case errors.Is(err, bot.ErrTargetNotFound):
		response.Err(w, http.StatusNotFound, "TARGET_NOT_FOUND", "No such user", requestID)

	case errors.Is(err, team.ErrTeamNotFound):
		response.Err(w, http.StatusNotFound, "TEAM_NOT_FOUND", "Team not found", requestID)

	case errors.As(err, &storeErr):
		slog.Error("store operation failed", "op", storeErr.Op, "error", storeErr.Err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "STORE_ERROR", "Temporary failure, please retry the command", requestID)

	default:
		slog.Error("command failed", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to handle command", requestID)
	}
}

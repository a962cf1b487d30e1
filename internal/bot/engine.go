// Package bot implements the role-gated workflow engine behind the chat
// surface: identity bootstrap, the permission gate, the team registry, the
// target resolver and the task assignment engine. Every operation is a
// stateless unit of work against the backing store; idempotency comes from
// the store's upsert guarantees, not from locks.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taskcrew/taskcrew/internal/notify"
	"github.com/taskcrew/taskcrew/internal/profile"
	"github.com/taskcrew/taskcrew/internal/task"
	"github.com/taskcrew/taskcrew/internal/team"
)

// Engine executes coordination workflows. It carries only its dependencies;
// all durable state lives in the repositories.
type Engine struct {
	profiles        profile.Repository
	teams           team.Repository
	tasks           task.Repository
	ownerExternalID string
}

// NewEngine creates an Engine. ownerExternalID is the single deploy-time
// identity that bootstraps with the owner role.
func NewEngine(profiles profile.Repository, teams team.Repository, tasks task.Repository, ownerExternalID string) *Engine {
	return &Engine{
		profiles:        profiles,
		teams:           teams,
		tasks:           tasks,
		ownerExternalID: ownerExternalID,
	}
}

// Handle dispatches a normalized command to the matching operation. A
// decoded callback action takes precedence over the verb.
func (e *Engine) Handle(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Action != nil {
		actor, err := e.caller(ctx, cmd)
		if err != nil {
			return nil, err
		}

		switch cmd.Action.Kind {
		case ActionPromote:
			return e.Promote(ctx, actor, cmd.Action.TargetExternalID)
		case ActionAssignTeam:
			return e.ListTeamsForAssignment(ctx, actor, cmd.Action.TargetExternalID)
		case ActionConfirmTeam:
			return e.ConfirmTeam(ctx, actor, cmd.Action.TeamID, cmd.Action.TargetExternalID)
		case ActionSwitchTeam:
			return e.SwitchTeam(ctx, actor, cmd.Action.TeamID)
		}
		return nil, ErrMalformedCommand
	}

	if cmd.Verb == "start" {
		return e.Start(ctx, cmd)
	}

	actor, err := e.caller(ctx, cmd)
	if err != nil {
		return nil, err
	}

	switch cmd.Verb {
	case "newteam":
		return e.CreateTeam(ctx, actor, strings.Join(cmd.Args, " "))
	case "newtask":
		return e.AssignTask(ctx, actor, cmd)
	case "myteams":
		return e.MyTeams(ctx, actor)
	case "mytasks":
		return e.MyTasks(ctx, actor)
	}
	return nil, ErrMalformedCommand
}

// caller resolves the command's sender. Anyone who never went through Start
// has no profile and gets ErrUnknownCaller instead of a nil dereference.
func (e *Engine) caller(ctx context.Context, cmd Command) (*profile.Profile, error) {
	p, err := e.profiles.GetByExternalID(ctx, cmd.CallerExternalID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrUnknownCaller
		}
		return nil, storeErr("looking up caller", err)
	}
	return p, nil
}

// Start bootstraps the caller's profile. The upsert keeps handle and display
// name current on every contact while never touching an existing role; the
// role is decided once, at creation, by comparing against the configured
// owner identity. The first contact of a non-owner notifies the owner with
// promote and assign-to-team follow-ups carrying the newcomer's external id.
func (e *Engine) Start(ctx context.Context, cmd Command) (*Result, error) {
	role := profile.RoleUser
	if cmd.CallerExternalID == e.ownerExternalID {
		role = profile.RoleOwner
	}

	p := &profile.Profile{
		ExternalID:  cmd.CallerExternalID,
		Handle:      cmd.CallerHandle,
		DisplayName: cmd.CallerDisplayName,
		Role:        role,
	}

	created, err := e.profiles.Upsert(ctx, p)
	if err != nil {
		return nil, storeErr("upserting profile", err)
	}

	res := &Result{Kind: ResultProfileReady, Profile: p}

	if created && p.Role != profile.RoleOwner {
		res.Notifications = append(res.Notifications, notify.Message{
			RecipientExternalID: e.ownerExternalID,
			Text:                fmt.Sprintf("New user: %s (@%s)", p.DisplayName, p.Handle),
			Actions: []notify.Action{
				{
					Label: "Make admin",
					Token: Action{Kind: ActionPromote, TargetExternalID: p.ExternalID}.Token(),
				},
				{
					Label: "Add to team",
					Token: Action{Kind: ActionAssignTeam, TargetExternalID: p.ExternalID}.Token(),
				},
			},
		})
	}

	return res, nil
}

// Promote raises the target from user to admin. Strictly owner-only; an
// admin cannot mint other admins. Targets already at admin or owner produce
// a no-op result so a stale button cannot double-promote or demote.
func (e *Engine) Promote(ctx context.Context, actor *profile.Profile, targetExternalID string) (*Result, error) {
	if actor.Role != profile.RoleOwner {
		return nil, ErrPermissionDenied
	}

	target, err := e.lookupTarget(ctx, targetRef{externalID: targetExternalID})
	if err != nil {
		return nil, err
	}

	if target.Role != profile.RoleUser {
		return &Result{Kind: ResultPromoteNoop, Target: target}, nil
	}

	if err := e.profiles.SetRole(ctx, target.ID, profile.RoleAdmin); err != nil {
		return nil, storeErr("promoting profile", err)
	}
	target.Role = profile.RoleAdmin

	return &Result{
		Kind:   ResultPromoted,
		Target: target,
		Notifications: []notify.Message{{
			RecipientExternalID: target.ExternalID,
			Text:                "You are now an admin.",
		}},
	}, nil
}

// CreateTeam creates a team and adds the creator as its first member. The
// two writes are not atomic: if the membership insert fails the team stays,
// memberless, and the failure is only logged.
func (e *Engine) CreateTeam(ctx context.Context, actor *profile.Profile, name string) (*Result, error) {
	if err := Authorize(actor, profile.RoleAdmin); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "team name is required"}
	}

	t := &team.Team{Name: name, CreatedBy: actor.ID}
	if err := e.teams.Create(ctx, t); err != nil {
		return nil, storeErr("creating team", err)
	}

	if err := e.teams.AddMember(ctx, t.ID, actor.ID); err != nil {
		slog.Error("adding creator to new team failed",
			"teamId", t.ID,
			"userId", actor.ID,
			"error", err,
		)
	}

	return &Result{Kind: ResultTeamCreated, Team: t}, nil
}

// ListTeamsForAssignment opens the two-phase assign-to-team flow: it
// presents every team as a confirm choice carrying both the team id and the
// target's external id, so the later confirmation needs no server-side
// state. An empty registry short-circuits with ResultNoTeams.
func (e *Engine) ListTeamsForAssignment(ctx context.Context, actor *profile.Profile, targetExternalID string) (*Result, error) {
	if err := Authorize(actor, profile.RoleAdmin); err != nil {
		return nil, err
	}

	target, err := e.lookupTarget(ctx, targetRef{externalID: targetExternalID})
	if err != nil {
		return nil, err
	}

	teams, err := e.teams.List(ctx)
	if err != nil {
		return nil, storeErr("listing teams", err)
	}
	if len(teams) == 0 {
		return &Result{Kind: ResultNoTeams}, nil
	}

	choices := make([]notify.Action, 0, len(teams))
	for _, t := range teams {
		choices = append(choices, notify.Action{
			Label: t.Name,
			Token: Action{Kind: ActionConfirmTeam, TeamID: t.ID, TargetExternalID: target.ExternalID}.Token(),
		})
	}

	return &Result{Kind: ResultTeamChoices, Teams: teams, Target: target, Choices: choices}, nil
}

// ConfirmTeam completes the assign-to-team flow. The membership write is an
// upsert, so replaying the same confirmation is a no-op rather than an
// error, and the newly added member is notified.
func (e *Engine) ConfirmTeam(ctx context.Context, actor *profile.Profile, teamID uuid.UUID, targetExternalID string) (*Result, error) {
	if err := Authorize(actor, profile.RoleAdmin); err != nil {
		return nil, err
	}

	target, err := e.lookupTarget(ctx, targetRef{externalID: targetExternalID})
	if err != nil {
		return nil, err
	}

	t, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return nil, err
		}
		return nil, storeErr("looking up team", err)
	}

	if err := e.teams.AddMember(ctx, t.ID, target.ID); err != nil {
		return nil, storeErr("adding member", err)
	}

	return &Result{
		Kind:   ResultMemberAdded,
		Team:   t,
		Target: target,
		Notifications: []notify.Message{{
			RecipientExternalID: target.ExternalID,
			Text:                fmt.Sprintf("You have been added to team %s.", t.Name),
		}},
	}, nil
}

// AssignTask creates a task for a target resolved by reply or by @handle.
// The creator's active team becomes the task's team context; without one
// the task is created teamless and shows up only in unfiltered views. The
// assignee notification is advisory and can never fail the assignment.
func (e *Engine) AssignTask(ctx context.Context, actor *profile.Profile, cmd Command) (*Result, error) {
	if err := Authorize(actor, profile.RoleAdmin); err != nil {
		return nil, err
	}

	ref, err := parseTarget(cmd)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(strings.Join(ref.rest, " "))
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "task title is required"}
	}

	target, err := e.lookupTarget(ctx, ref)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		Title:      title,
		TeamID:     actor.ActiveTeamID,
		AssignedTo: target.ID,
		CreatedBy:  actor.ID,
		Status:     task.StatusPending,
	}
	if err := e.tasks.Create(ctx, t); err != nil {
		return nil, storeErr("creating task", err)
	}

	return &Result{
		Kind:   ResultTaskCreated,
		Task:   t,
		Target: target,
		Notifications: []notify.Message{{
			RecipientExternalID: target.ExternalID,
			Text:                fmt.Sprintf("New task: %s (from %s)", t.Title, actor.DisplayName),
		}},
	}, nil
}

// MyTeams lists the caller's memberships as switch-team choices, the
// in-chat way of selecting the active team context.
func (e *Engine) MyTeams(ctx context.Context, actor *profile.Profile) (*Result, error) {
	teams, err := e.teams.ListByMember(ctx, actor.ID)
	if err != nil {
		return nil, storeErr("listing memberships", err)
	}
	if len(teams) == 0 {
		return &Result{Kind: ResultNoTeams}, nil
	}

	choices := make([]notify.Action, 0, len(teams))
	for _, t := range teams {
		choices = append(choices, notify.Action{
			Label: t.Name,
			Token: Action{Kind: ActionSwitchTeam, TeamID: t.ID}.Token(),
		})
	}

	return &Result{Kind: ResultTeamChoices, Teams: teams, Choices: choices}, nil
}

// SwitchTeam sets the caller's active team context. Only members of the
// chosen team may select it.
func (e *Engine) SwitchTeam(ctx context.Context, actor *profile.Profile, teamID uuid.UUID) (*Result, error) {
	t, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return nil, err
		}
		return nil, storeErr("looking up team", err)
	}

	member, err := e.teams.IsMember(ctx, t.ID, actor.ID)
	if err != nil {
		return nil, storeErr("checking membership", err)
	}
	if !member {
		return nil, ErrPermissionDenied
	}

	if err := e.profiles.SetActiveTeam(ctx, actor.ID, t.ID); err != nil {
		return nil, storeErr("setting active team", err)
	}
	actor.ActiveTeamID = &t.ID

	return &Result{Kind: ResultTeamSelected, Team: t, Profile: actor}, nil
}

// MyTasks lists every task assigned to the caller, including teamless ones.
func (e *Engine) MyTasks(ctx context.Context, actor *profile.Profile) (*Result, error) {
	tasks, err := e.tasks.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, storeErr("listing tasks", err)
	}

	return &Result{Kind: ResultTaskList, Tasks: tasks}, nil
}

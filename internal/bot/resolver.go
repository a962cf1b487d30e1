package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/taskcrew/taskcrew/internal/profile"
)

// targetRef is the syntactic half of target resolution: which addressing
// mode the command used and the argument tokens left over for the operation
// itself.
type targetRef struct {
	externalID string // reply mode
	handle     string // @handle mode, prefix stripped
	rest       []string
}

// parseTarget determines the addressing mode of a command. A replied-to
// message always wins over an @handle token. Commands with neither fail
// with ErrMalformedCommand so the transport can render a usage hint rather
// than a "no such user" message.
func parseTarget(cmd Command) (targetRef, error) {
	if cmd.RepliedToExternalID != "" {
		return targetRef{externalID: cmd.RepliedToExternalID, rest: cmd.Args}, nil
	}

	if len(cmd.Args) == 0 {
		return targetRef{}, ErrMalformedCommand
	}
	handle := cmd.Args[0]
	if !strings.HasPrefix(handle, "@") || len(handle) < 2 {
		return targetRef{}, ErrMalformedCommand
	}

	return targetRef{handle: strings.TrimPrefix(handle, "@"), rest: cmd.Args[1:]}, nil
}

// lookupTarget resolves a parsed reference to a profile. Both modes fail
// with ErrTargetNotFound when the addressed user never contacted the
// system; handle matching is exact and case-sensitive.
func (e *Engine) lookupTarget(ctx context.Context, ref targetRef) (*profile.Profile, error) {
	var (
		p   *profile.Profile
		err error
	)
	if ref.externalID != "" {
		p, err = e.profiles.GetByExternalID(ctx, ref.externalID)
	} else {
		p, err = e.profiles.GetByHandle(ctx, ref.handle)
	}
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, storeErr("resolving target", err)
	}

	return p, nil
}

package bot

import "github.com/taskcrew/taskcrew/internal/profile"

// Authorize reports whether p may perform an operation restricted to the
// given roles. The owner passes every check, so callers never need to list
// RoleOwner explicitly. Pure; the profile lookup happens at the call site.
func Authorize(p *profile.Profile, allowed ...profile.Role) error {
	if p.Role == profile.RoleOwner {
		return nil
	}
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return ErrPermissionDenied
}

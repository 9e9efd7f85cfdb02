package access

import (
	"context"

	"github.com/edulane/trailguard/internal/domain"
)

// DecideAdmin decides access for the administrative actor partition
// (FULL_ADMIN, DELEGATED_ADMIN, READ_ONLY_REVIEWER).
//
// The grant check runs before the password check. A delegated admin
// without a grant row must see "no access", never a password prompt:
// prompting would leak that the trail exists and is protected to
// someone with no right to see it at all. Keep that order.
func (e *Engine) DecideAdmin(ctx context.Context, actor *domain.Actor, trail *domain.Trail, action domain.Action) (domain.Decision, error) {
	if actor == nil {
		return domain.Deny(domain.ReasonNotAuthenticated), nil
	}
	if !actor.Role.AdminClass() {
		return domain.Deny(domain.ReasonNoAccess), nil
	}
	if actor.Role == domain.RoleReadOnlyReviewer && action == domain.ActionEdit {
		return domain.Deny(domain.ReasonNoAccess), nil
	}

	// Delegated admins and reviewers have no default access, only
	// explicitly granted access. FULL_ADMIN skips this entirely.
	if actor.Role != domain.RoleFullAdmin {
		granted, err := e.grants.HasDelegatedAdminGrant(ctx, actor.ID, trail.ID)
		if err != nil {
			return domain.Deny(domain.ReasonNoAccess), err
		}
		if !granted {
			return domain.Deny(domain.ReasonNoAccess), nil
		}
	}

	if trail.IsPasswordProtected {
		if trail.CreatedBy(actor.ID) {
			return domain.Allow(domain.ReasonCreator), nil
		}
		state, err := e.unlockState(ctx, actor.ID, trail.ID)
		if err != nil {
			return domain.Deny(domain.ReasonNoAccess), err
		}
		switch state {
		case domain.UnlockExpired:
			return domain.Deny(domain.ReasonPasswordExpired), nil
		case domain.UnlockNone:
			return domain.Deny(domain.ReasonPasswordRequired), nil
		}
	}

	return domain.Allow(domain.ReasonAllowed), nil
}

package access

import (
	"context"

	"github.com/edulane/trailguard/internal/domain"
)

// DecideEndUser decides view access for teachers, students and
// anonymous callers, as an ordered list of independent allow rules;
// first match wins.
//
// With PasswordIsAdditionalLayer set (the default), enrollment and
// explicit grants do not bypass a trail password: the password is an
// extra layer over every other grant. The legacy variant treats a
// correct password as one alternative grant among the others.
func (e *Engine) DecideEndUser(ctx context.Context, actor *domain.Actor, trail *domain.Trail) (domain.Decision, error) {
	if !trail.IsPasswordProtected {
		return domain.Allow(domain.ReasonPublic), nil
	}
	if actor == nil {
		return domain.Deny(domain.ReasonNotAuthenticated), nil
	}
	if trail.CreatedBy(actor.ID) {
		return domain.Allow(domain.ReasonCreator), nil
	}

	state, err := e.unlockState(ctx, actor.ID, trail.ID)
	if err != nil {
		return domain.Deny(domain.ReasonNoAccess), err
	}
	if state == domain.UnlockValid {
		return domain.Allow(domain.ReasonPasswordUnlocked), nil
	}

	if !e.opts.PasswordIsAdditionalLayer {
		allowed, reason, err := e.endUserGrant(ctx, actor, trail)
		if err != nil {
			return domain.Deny(domain.ReasonNoAccess), err
		}
		if allowed {
			return domain.Allow(reason), nil
		}
	}

	if state == domain.UnlockExpired {
		return domain.Deny(domain.ReasonPasswordExpired), nil
	}
	return domain.Deny(domain.ReasonPasswordRequired), nil
}

// endUserGrant resolves the password-bypassing grants of the legacy
// variant: enrollment first, then the explicit allow-lists.
func (e *Engine) endUserGrant(ctx context.Context, actor *domain.Actor, trail *domain.Trail) (bool, domain.Reason, error) {
	if actor.Role == domain.RoleStudent {
		enrolled, err := e.grants.IsEnrolled(ctx, actor.ID, trail.ID)
		if err != nil {
			return false, "", err
		}
		if enrolled {
			return true, domain.ReasonEnrolled, nil
		}
		// StudentGrant rows are consulted only for restricted trails.
		if trail.IsRestricted {
			granted, err := e.grants.HasStudentGrant(ctx, actor.ID, trail.ID)
			if err != nil {
				return false, "", err
			}
			if granted {
				return true, domain.ReasonExplicitGrant, nil
			}
		}
		return false, "", nil
	}

	if actor.Role == domain.RoleTeacher {
		visible, err := e.teacherVisible(ctx, actor.ID, trail)
		if err != nil {
			return false, "", err
		}
		if visible {
			return true, domain.ReasonExplicitGrant, nil
		}
	}
	return false, "", nil
}

// teacherVisible unions the blanket ALL_TEACHERS grant with point
// TeacherAssignment rows. Either source grants visibility; they are
// never intersected.
func (e *Engine) teacherVisible(ctx context.Context, teacherID domain.ActorID, trail *domain.Trail) (bool, error) {
	if trail.Visibility == domain.VisibilityAllTeachers {
		return true, nil
	}
	return e.grants.HasTeacherAssignment(ctx, trail.ID, teacherID)
}

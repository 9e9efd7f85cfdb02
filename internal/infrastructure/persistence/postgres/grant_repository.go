package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edulane/trailguard/internal/domain"
)

// GrantRepository resolves the explicit allow-list relations. Each
// relation is scoped to one actor class and queried independently.
type GrantRepository struct {
	pool *pgxpool.Pool
}

func NewGrantRepository(pool *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{pool: pool}
}

func (r *GrantRepository) HasDelegatedAdminGrant(ctx context.Context, adminID domain.ActorID, trailID domain.TrailID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM delegated_admin_grants
			WHERE admin_id = $1 AND trail_id = $2
		)
	`
	return r.exists(ctx, query, "delegated admin grant", adminID.UUID, trailID.UUID)
}

func (r *GrantRepository) HasTeacherAssignment(ctx context.Context, trailID domain.TrailID, teacherID domain.ActorID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM teacher_assignments
			WHERE trail_id = $1 AND teacher_id = $2
		)
	`
	return r.exists(ctx, query, "teacher assignment", trailID.UUID, teacherID.UUID)
}

func (r *GrantRepository) HasStudentGrant(ctx context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM student_grants
			WHERE student_id = $1 AND trail_id = $2
		)
	`
	return r.exists(ctx, query, "student grant", studentID.UUID, trailID.UUID)
}

func (r *GrantRepository) IsEnrolled(ctx context.Context, studentID domain.ActorID, trailID domain.TrailID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND trail_id = $2
		)
	`
	return r.exists(ctx, query, "enrollment", studentID.UUID, trailID.UUID)
}

func (r *GrantRepository) exists(ctx context.Context, query, what string, args ...any) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("check %s: %w", what, err)
	}
	return found, nil
}

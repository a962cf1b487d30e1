package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Upsert inserts or refreshes a profile keyed on external_id. The conflict
// branch updates handle and display_name only; role and active_team_id are
// never touched once the row exists. xmax = 0 distinguishes a fresh insert
// from a conflict update.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) (bool, error) {
	query := `
		INSERT INTO profiles (external_id, handle, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE
		SET handle = EXCLUDED.handle,
		    display_name = EXCLUDED.display_name,
		    updated_at = now()
		RETURNING id, role, active_team_id, created_at, updated_at, (xmax = 0)`

	var created bool
	err := r.pool.QueryRow(ctx, query, p.ExternalID, p.Handle, p.DisplayName, p.Role).Scan(
		&p.ID, &p.Role, &p.ActiveTeamID, &p.CreatedAt, &p.UpdatedAt, &created,
	)
	if err != nil {
		return false, fmt.Errorf("upserting profile: %w", err)
	}

	return created, nil
}

// GetByID retrieves a single profile by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return r.get(ctx, "id = $1", id)
}

// GetByExternalID retrieves a single profile by its transport identifier.
func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*Profile, error) {
	return r.get(ctx, "external_id = $1", externalID)
}

// GetByHandle retrieves a single profile by its handle. The match is exact
// and case-sensitive.
func (r *PostgresRepository) GetByHandle(ctx context.Context, handle string) (*Profile, error) {
	return r.get(ctx, "handle = $1", handle)
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*Profile, error) {
	query := `
		SELECT id, external_id, handle, display_name, role, active_team_id,
		       created_at, updated_at
		FROM profiles
		WHERE ` + where

	var p Profile
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.ExternalID, &p.Handle, &p.DisplayName, &p.Role,
		&p.ActiveTeamID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return &p, nil
}

// SetRole updates the role of an existing profile.
func (r *PostgresRepository) SetRole(ctx context.Context, id uuid.UUID, role Role) error {
	query := `UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("updating profile role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// SetActiveTeam records the team a profile uses as default context for new
// tasks.
func (r *PostgresRepository) SetActiveTeam(ctx context.Context, id uuid.UUID, teamID uuid.UUID) error {
	query := `UPDATE profiles SET active_team_id = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, teamID)
	if err != nil {
		return fmt.Errorf("updating active team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

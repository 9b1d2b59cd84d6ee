package repository

import (
	"context"
	"fmt"

	"gramboard/database"
	"gramboard/models"
	"github.com/jackc/pgx/v5"
)

// ProfileRepository implements the service.ProfileRepository interface
type ProfileRepository struct {
	db *database.DB
	q  queryable
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db, q: db.Pool}
}

// GetByUsername retrieves a profile by its username
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `
		SELECT username, followers, following, posts_count, engagement, last_updated
		FROM profiles
		WHERE username = $1
	`

	var profile models.Profile
	err := r.q.QueryRow(ctx, query, username).Scan(
		&profile.Username,
		&profile.Followers,
		&profile.Following,
		&profile.PostsCount,
		&profile.Engagement,
		&profile.LastUpdated,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}

	return &profile, nil
}

// GetAll returns all profiles ordered by follower count descending.
// Username breaks ties so the read order is stable
func (r *ProfileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT username, followers, following, posts_count, engagement, last_updated
		FROM profiles
		ORDER BY followers DESC, username ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(
			&profile.Username,
			&profile.Followers,
			&profile.Following,
			&profile.PostsCount,
			&profile.Engagement,
			&profile.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// ListUsernames returns the identifiers of all tracked profiles
func (r *ProfileRepository) ListUsernames(ctx context.Context) ([]string, error) {
	query := `
		SELECT username
		FROM profiles
		ORDER BY username ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames = append(usernames, username)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usernames: %w", err)
	}

	return usernames, nil
}

// TouchLastSynced refreshes a profile's last-synchronized timestamp
func (r *ProfileRepository) TouchLastSynced(ctx context.Context, username string) error {
	query := `
		UPDATE profiles
		SET last_updated = NOW()
		WHERE username = $1
	`

	result, err := r.q.Exec(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to touch profile %s: %w", username, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", username)
	}

	return nil
}

// Upsert inserts a profile or updates its metrics if it already exists
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.upsert(ctx, r.q, profile)
}

// UpsertBatch inserts or updates multiple profiles within one transaction
func (r *ProfileRepository) UpsertBatch(ctx context.Context, profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, profile := range profiles {
			if err := r.upsert(ctx, tx, profile); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProfileRepository) upsert(ctx context.Context, q queryable, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (username, followers, following, posts_count, engagement, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (username)
		DO UPDATE SET
			followers = EXCLUDED.followers,
			following = EXCLUDED.following,
			posts_count = EXCLUDED.posts_count,
			engagement = EXCLUDED.engagement,
			last_updated = NOW()
	`

	_, err := q.Exec(ctx, query,
		profile.Username,
		profile.Followers,
		profile.Following,
		profile.PostsCount,
		profile.Engagement,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.Username, err)
	}

	return nil
}

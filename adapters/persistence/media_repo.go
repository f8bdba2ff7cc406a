package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techfolio/backend/internal/domain/media"
	"github.com/techfolio/backend/pkg/apperror"
)

type postgresMediaRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMediaRepo(db *pgxpool.Pool) media.Repository {
	return &postgresMediaRepo{db: db}
}

var psqlMedia = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresMediaRepo) Save(ctx context.Context, m *media.Media) error {
	query := `
		INSERT INTO media (id, owner_id, provider, url, public_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, m.ID, m.OwnerID, m.Provider, m.URL, m.PublicID, m.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to insert media", err)
	}
	return nil
}

func (r *postgresMediaRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*media.Media, error) {
	query, args, err := psqlMedia.
		Select("id", "owner_id", "provider", "url", "public_id", "created_at").
		From("media").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build media list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list media", err)
	}
	defer rows.Close()

	items := make([]*media.Media, 0)
	for rows.Next() {
		m := &media.Media{}
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Provider, &m.URL, &m.PublicID, &m.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan media row", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating media rows", err)
	}
	return items, nil
}

func (r *postgresMediaRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete media", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("media", id.String())
	}
	return nil
}

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

var psqlPortfolio = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const portfolioColumns = "owner_id, name, titles, bio, skills, projects, socials, profile_picture, email, updated_at"

func (r *postgresPortfolioRepo) scanPortfolio(row pgx.Row) (*portfolio.Portfolio, error) {
	p := &portfolio.Portfolio{}
	var titlesBytes, skillsBytes, projectsBytes, socialsBytes []byte

	err := row.Scan(
		&p.OwnerID,
		&p.Name,
		&titlesBytes,
		&p.Bio,
		&skillsBytes,
		&projectsBytes,
		&socialsBytes,
		&p.ProfilePicture,
		&p.Email,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(titlesBytes, &p.Titles); err != nil {
		r.logger.Warn("Failed to unmarshal titles", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Titles = nil
	}
	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = nil
	}
	if err := json.Unmarshal(projectsBytes, &p.Projects); err != nil {
		r.logger.Warn("Failed to unmarshal projects", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Projects = nil
	}
	if err := json.Unmarshal(socialsBytes, &p.Socials); err != nil {
		r.logger.Warn("Failed to unmarshal socials", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Socials = portfolio.Socials{}
	}

	// Every read hands back a fully-defaulted record.
	p.Normalize()
	return p, nil
}

func (r *postgresPortfolioRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolios WHERE owner_id = $1`, portfolioColumns)

	p, err := r.scanPortfolio(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query portfolio", err)
	}
	return p, nil
}

func (r *postgresPortfolioRepo) Create(ctx context.Context, p *portfolio.Portfolio) error {
	p.Normalize()
	titlesBytes, skillsBytes, projectsBytes, socialsBytes, err := marshalSequences(p)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO portfolios (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, portfolioColumns)
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Name, titlesBytes, p.Bio, skillsBytes,
		projectsBytes, socialsBytes, p.ProfilePicture, p.Email, time.Now().UTC(),
	)
	if err != nil {
		return apperror.NewInternal("failed to insert portfolio", err)
	}
	return nil
}

// Merge performs the partial write the editor relies on: an upsert that
// only overwrites the columns the patch supplies, so sibling fields a
// save did not touch survive. Supplied sequences replace the stored
// sequence whole.
func (r *postgresPortfolioRepo) Merge(ctx context.Context, ownerID uuid.UUID, patch portfolio.Patch) error {
	cols := []string{"owner_id"}
	vals := []any{ownerID}
	updates := []string{}

	add := func(col string, supplied bool, value any, zero any) {
		cols = append(cols, col)
		if supplied {
			vals = append(vals, value)
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		} else {
			vals = append(vals, zero)
		}
	}

	marshal := func(v any) (any, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal portfolio field", err)
		}
		return b, nil
	}

	add("name", patch.Name != nil, deref(patch.Name), "")
	add("bio", patch.Bio != nil, deref(patch.Bio), "")
	add("profile_picture", patch.ProfilePicture != nil, deref(patch.ProfilePicture), "")
	add("email", patch.Email != nil, deref(patch.Email), "")

	titles := []string{}
	if patch.Titles != nil {
		titles = *patch.Titles
	}
	titlesBytes, err := marshal(titles)
	if err != nil {
		return err
	}
	add("titles", patch.Titles != nil, titlesBytes, []byte("[]"))

	skills := []string{}
	if patch.Skills != nil {
		skills = *patch.Skills
	}
	skillsBytes, err := marshal(skills)
	if err != nil {
		return err
	}
	add("skills", patch.Skills != nil, skillsBytes, []byte("[]"))

	projects := []portfolio.Project{}
	if patch.Projects != nil {
		projects = *patch.Projects
	}
	projectsBytes, err := marshal(projects)
	if err != nil {
		return err
	}
	add("projects", patch.Projects != nil, projectsBytes, []byte("[]"))

	socials := portfolio.Socials{}
	if patch.Socials != nil {
		socials = *patch.Socials
	}
	socialsBytes, err := marshal(socials)
	if err != nil {
		return err
	}
	add("socials", patch.Socials != nil, socialsBytes, []byte(`{"linkedin":"","github":""}`))

	cols = append(cols, "updated_at")
	vals = append(vals, time.Now().UTC())
	updates = append(updates, "updated_at = EXCLUDED.updated_at")

	placeholders := make([]string, len(vals))
	for i := range vals {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO portfolios (%s)
		VALUES (%s)
		ON CONFLICT (owner_id) DO UPDATE SET %s
	`, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	if _, err := r.db.Exec(ctx, query, vals...); err != nil {
		return apperror.NewInternal("failed to merge portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) ListAll(ctx context.Context) ([]*portfolio.Portfolio, error) {
	query, args, err := psqlPortfolio.
		Select(strings.Split(portfolioColumns, ", ")...).
		From("portfolios").
		OrderBy("owner_id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list portfolios", err)
	}
	defer rows.Close()

	portfolios := make([]*portfolio.Portfolio, 0)
	for rows.Next() {
		p, err := r.scanPortfolio(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan portfolio row", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating portfolio rows", err)
	}
	return portfolios, nil
}

func marshalSequences(p *portfolio.Portfolio) (titles, skills, projects, socials []byte, err error) {
	if titles, err = json.Marshal(p.Titles); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal titles", err)
	}
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal skills", err)
	}
	if projects, err = json.Marshal(p.Projects); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal projects", err)
	}
	if socials, err = json.Marshal(p.Socials); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal socials", err)
	}
	return titles, skills, projects, socials, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

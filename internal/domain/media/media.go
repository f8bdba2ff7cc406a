package media

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded project gallery image hosted by the external
// storage provider. Profile pictures are not media rows; they live
// inline on the portfolio record as data URIs.
type Media struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Provider  string    `json:"provider"`
	URL       string    `json:"url"`
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, m *Media) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Media, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

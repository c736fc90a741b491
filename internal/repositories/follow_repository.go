package repositories

import (
	"errors"

	"github.com/capasdev/redsocial/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateEdge is returned when the (principal, seguidor) pair already exists.
var ErrDuplicateEdge = errors.New("follow relationship already exists")

// FollowRepository defines the interface for follow data operations.
// Existence of either username is the caller's responsibility.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	ListFollowees(seguidorUsername string) ([]models.Follow, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge as a single atomic insert; the unique
// constraint on the pair rejects duplicates, avoiding a check-then-insert race.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEdge
		}
		return err
	}
	return nil
}

// ListFollowees returns the edges where the given user is the follower,
// in store order. An empty result is a valid state, not an error.
func (r *PostgresFollowRepository) ListFollowees(seguidorUsername string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("usuario_seguidor_username = ?", seguidorUsername).Find(&follows).Error
	return follows, err
}

package repositories

import (
	"errors"

	"github.com/capasdev/redsocial/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when the username/password pair
// does not match a stored account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.Usuario) error
	GetAllUsers() ([]models.Usuario, error)
	GetUserByUsername(username string) (*models.Usuario, error)
	ValidateCredentials(username, contrasenaPlana string) (*models.Usuario, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.Usuario) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetAllUsers() ([]models.Usuario, error) {
	var users []models.Usuario
	err := r.db.Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.Usuario, error) {
	var user models.Usuario
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateCredentials fetches the stored hash and compares it against the
// plaintext password. An unknown username and a wrong password are
// indistinguishable to the caller.
func (r *PostgresUserRepository) ValidateCredentials(username, contrasenaPlana string) (*models.Usuario, error) {
	var user models.Usuario
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.ContrasenaHash), []byte(contrasenaPlana)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

package user

import (
	"time"

	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// User is the dashboard operator account entity
type User struct {
	ID           int       `gorm:"primaryKey"`
	UserName     string    `gorm:"column:user_name"`
	Email        string    `gorm:"unique"`
	HashPassword string    `gorm:"column:hash_password"`
	Role         string    `gorm:"column:role"`
	Status       bool      `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"autoCreateTime:milli"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:milli"`
}

func (User) TableName() string {
	return "users"
}

type UserRepositoryInterface interface {
	GetByEmail(email string) (*User, error)
	GetByID(id int) (*User, error)
}

type Repository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewUserRepository(db *gorm.DB, loggerInstance *logger.Logger) UserRepositoryInterface {
	return &Repository{DB: db, Logger: loggerInstance}
}

func (r *Repository) GetByEmail(email string) (*User, error) {
	var u User
	err := r.DB.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.Logger.Error("Error fetching user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(id int) (*User, error) {
	var u User
	err := r.DB.First(&u, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.Logger.Error("Error fetching user by id", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

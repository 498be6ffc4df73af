package mysql

import (
	"fmt"
	"os"
	"strings"

	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"
	"go-bulk-messaging-dashboard/src/infrastructure/repository/mysql/history"
	"go-bulk-messaging-dashboard/src/infrastructure/repository/mysql/user"
	"go-bulk-messaging-dashboard/src/infrastructure/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Configured reports whether database environment variables are set at
// all. The dashboard runs without a database (file audit logs only)
// when they are absent.
func Configured() bool {
	return os.Getenv("DB_HOST") != ""
}

// loadDatabaseConfig loads database configuration from environment variables
// Returns error if any required environment variable is missing
func loadDatabaseConfig() (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		Driver:   utils.GetEnv("DB_DRIVER", "mysql"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  utils.GetEnv("DB_SSLMODE", "disable"),
	}

	var missingVars []string
	if cfg.Host == "" {
		missingVars = append(missingVars, "DB_HOST")
	}
	if cfg.Port == "" {
		missingVars = append(missingVars, "DB_PORT")
	}
	if cfg.User == "" {
		missingVars = append(missingVars, "DB_USER")
	}
	if cfg.Password == "" {
		missingVars = append(missingVars, "DB_PASSWORD")
	}
	if cfg.DBName == "" {
		missingVars = append(missingVars, "DB_NAME")
	}

	if len(missingVars) > 0 {
		return DatabaseConfig{}, fmt.Errorf("missing required database environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}

func (c DatabaseConfig) GetDSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

func (c DatabaseConfig) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "mysql":
		return mysql.Open(c.GetDSN()), nil
	case "postgres":
		return postgres.Open(c.GetDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

type Repository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func (r *Repository) InitDatabase() error {
	cfg, err := loadDatabaseConfig()
	if err != nil {
		r.Logger.Error("Failed to load database configuration", zap.Error(err))
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dialector, err := cfg.dialector()
	if err != nil {
		return err
	}

	gormZap := logger.NewGormLogger(r.Logger.Log).
		LogMode(gormlogger.Warn)

	r.DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormZap,
	})
	if err != nil {
		r.Logger.Error("Error connecting to the database", zap.Error(err))
		return err
	}

	err = r.MigrateEntitiesGORM()
	if err != nil {
		r.Logger.Error("Error migrating the database", zap.Error(err))
		return err
	}

	err = r.SeedInitialUser()
	if err != nil {
		r.Logger.Error("Error seeding initial user", zap.Error(err))
		return err
	}

	r.Logger.Info("Database connection and migrations successful", zap.String("driver", cfg.Driver))
	return nil
}

func (r *Repository) MigrateEntitiesGORM() error {
	err := r.DB.AutoMigrate(
		&user.User{},
		&history.DeliveryRecord{},
	)
	if err != nil {
		r.Logger.Error("Error migrating database entities", zap.Error(err))
		return err
	}

	r.Logger.Info("Database entities migration completed successfully")
	return nil
}

func (r *Repository) SeedInitialUser() error {
	email := os.Getenv("START_USER_EMAIL")
	pw := os.Getenv("START_USER_PW")
	if email == "" || pw == "" {
		r.Logger.Info("Initial user seed skipped: START_USER_EMAIL or START_USER_PW not set")
		return nil
	}

	var existingUser user.User
	err := r.DB.Where("email = ?", email).First(&existingUser).Error
	if err == nil {
		r.Logger.Info("Initial user already exists, skipping seed", zap.String("email", email))
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		r.Logger.Error("Error hashing password for initial user", zap.Error(err))
		return err
	}

	newUser := user.User{
		Email:        email,
		HashPassword: string(hashedPassword),
		Role:         "admin",
		UserName:     "admin",
		Status:       true,
	}

	err = r.DB.Create(&newUser).Error
	if err != nil {
		r.Logger.Error("Error creating initial user", zap.Error(err))
		return err
	}

	r.Logger.Info("Initial user created successfully", zap.String("email", email))
	return nil
}

// InitDB initializes the database connection with logger
func InitDB(loggerInstance *logger.Logger) (*gorm.DB, error) {
	repo := &Repository{
		Logger: loggerInstance,
	}

	err := repo.InitDatabase()
	if err != nil {
		return nil, err
	}

	return repo.DB, nil
}

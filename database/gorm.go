package database

import (
	"fmt"
	"log"
	"time"

	"github.com/tuyensinh/admission-advisor/config"
	"github.com/tuyensinh/admission-advisor/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() *gorm.DB
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM opens the database selected by DB_DRIVER (postgres or sqlite)
func StartGORM(getEnv *config.EnvironmentVariable) (*GORMStore, error) {
	dialector, err := dialectorFor(getEnv)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.Printf("Unable to connect to %s with GORM: %v", getEnv.DB_DRIVER, err)
		return nil, err
	}

	if getEnv.DB_DRIVER == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		// Connection pool settings
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Printf("Successfully connected to %s database with GORM.", getEnv.DB_DRIVER)

	return &GORMStore{db: db}, nil
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func dialectorFor(getEnv *config.EnvironmentVariable) (gorm.Dialector, error) {
	switch getEnv.DB_DRIVER {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			getEnv.DB_HOST,
			getEnv.DB_USER_NAME,
			getEnv.DB_PASSWORD,
			getEnv.DB_NAME,
			getEnv.DB_PORT,
			getEnv.DB_SSL_MODE,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "sqlite3":
		if getEnv.DB_PATH == "" {
			return nil, fmt.Errorf("sqlite path must be provided")
		}
		return sqlite.Open(getEnv.DB_PATH + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", getEnv.DB_DRIVER)
	}
}

// Models lists every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
		// Admission catalog
		&model.University{},
		&model.AcademicProgram{},
		&model.Major{},
		&model.AdmissionMethod{},
		&model.AdmissionCriteria{},
		&model.AdmissionScore{},
		&model.AdmissionNew{},
		&model.Scholarship{},

		// Chat models
		&model.ChatSession{},
		&model.ChatMessage{},
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	if err := s.db.AutoMigrate(Models()...); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM database connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services/handlers
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/bundestweets/bundestweets/internal/models"
	"github.com/bundestweets/bundestweets/pkg/config"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

// zapWriter adapts zap.Logger to logger.Writer interface
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

// derivedColumns are the only columns UpdateDerivedColumn may touch. All
// scrape-time columns are immutable once a row is inserted.
var derivedColumns = map[string]bool{
	"text_stemmed":    true,
	"text_cleaned":    true,
	"offensive_proba": true,
}

// Store is the tweet corpus store. Both backends (embedded sqlite file and
// networked postgres) run behind the same gorm handle and honor identical
// semantics; callers never branch on the backend.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open opens the corpus store backend selected by the configuration
func Open(cfg *config.DatabaseConfig, logLevel string) (*Store, error) {
	var gormLogLevel logger.LogLevel
	switch logLevel {
	case "DEBUG", "debug":
		gormLogLevel = logger.Info
	case "INFO", "info":
		gormLogLevel = logger.Warn
	case "WARN", "warn", "WARNING", "warning":
		gormLogLevel = logger.Error
	case "ERROR", "error":
		gormLogLevel = logger.Silent
	default:
		gormLogLevel = logger.Warn
	}

	zapLogger := logging.WithComponent("store")
	writer := &zapWriter{logger: zapLogger}

	gormLogger := logger.New(
		writer,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// Single exclusive writer per invocation
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zapLogger.Info("Corpus store opened", zap.String("driver", cfg.Driver))

	return &Store{db: db, logger: zapLogger}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks database health
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// EnsureSchema creates the tweets table if missing and backfills any
// derived columns an older snapshot lacks. Running it against an already
// migrated schema is a no-op, not an error.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "store.ensure_schema")
	defer span.End()

	m := s.db.WithContext(ctx).Migrator()

	if !m.HasTable(&models.Tweet{}) {
		if err := m.CreateTable(&models.Tweet{}); err != nil {
			return fmt.Errorf("failed to create tweets table: %w", err)
		}
		s.logger.Info("Created tweets table")
		return nil
	}

	// Derived columns arrived after the first deployments; add them to
	// existing tables one by one.
	for field, column := range map[string]string{
		"TextStemmed":    "text_stemmed",
		"TextCleaned":    "text_cleaned",
		"OffensiveProba": "offensive_proba",
	} {
		if m.HasColumn(&models.Tweet{}, column) {
			continue
		}
		if err := m.AddColumn(&models.Tweet{}, field); err != nil {
			return fmt.Errorf("failed to add column %s: %w", column, err)
		}
		s.logger.Info("Added derived column", zap.String("column", column))
	}

	return nil
}

// insertBatchSize keeps one INSERT under sqlite's default limit of 999
// bind variables.
const insertBatchSize = 50

// InsertIfAbsent bulk-inserts tweets. Rows whose ID already exists are
// silently skipped, never overwritten. Returns the number of rows actually
// inserted.
func (s *Store) InsertIfAbsent(ctx context.Context, tweets []models.Tweet) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.insert_if_absent")
	defer span.End()

	if len(tweets) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&tweets, insertBatchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to insert tweets: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// DerivedValue pairs a tweet ID with a new value for one derived column.
type DerivedValue struct {
	ID    int64
	Value interface{}
}

// UpdateDerivedColumn batch-updates a single derived column by primary key
// inside one transaction. It refuses to touch any scrape-time column.
func (s *Store) UpdateDerivedColumn(ctx context.Context, column string, values []DerivedValue) error {
	ctx, span := telemetry.StartSpan(ctx, "store.update_derived_column")
	defer span.End()

	if !derivedColumns[column] {
		return fmt.Errorf("column %q is not a derived column", column)
	}
	if len(values) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, v := range values {
			if err := tx.Model(&models.Tweet{}).
				Where("id = ?", v.ID).
				Update(column, v.Value).Error; err != nil {
				return fmt.Errorf("failed to update %s for id %d: %w", column, v.ID, err)
			}
		}
		return nil
	})
}

// ReadAll returns every stored tweet with all columns currently present.
func (s *Store) ReadAll(ctx context.Context) ([]models.Tweet, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.read_all")
	defer span.End()

	var tweets []models.Tweet
	if err := s.db.WithContext(ctx).Order("id").Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to read tweets: %w", err)
	}
	return tweets, nil
}

// ReadUnprocessed returns tweets with text whose derived text columns have
// not been computed yet. Enrichment passes run incrementally over these.
func (s *Store) ReadUnprocessed(ctx context.Context) ([]models.Tweet, error) {
	ctx, span := telemetry.StartSpan(ctx, "store.read_unprocessed")
	defer span.End()

	var tweets []models.Tweet
	if err := s.db.WithContext(ctx).
		Where("text_cleaned IS NULL").
		Order("id").
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to read unprocessed tweets: %w", err)
	}
	return tweets, nil
}

// SnapshotKey identifies the current corpus content for cache invalidation:
// it changes whenever rows are added.
func (s *Store) SnapshotKey(ctx context.Context) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tweet{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count tweets: %w", err)
	}
	var maxID int64
	row := s.db.WithContext(ctx).Model(&models.Tweet{}).Select("COALESCE(MAX(id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return "", fmt.Errorf("failed to read max id: %w", err)
	}
	return fmt.Sprintf("%d:%d", count, maxID), nil
}

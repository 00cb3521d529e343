package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"placepilot/internal/model"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the tables if they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		hashed_password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS user_preferences (
		user_id TEXT PRIMARY KEY REFERENCES users(id),
		preferences JSONB NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS recommendation_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		query TEXT NOT NULL,
		place_types TEXT[] NOT NULL DEFAULT '{}',
		result_count INT NOT NULL,
		took_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		place_id TEXT,
		place_name TEXT NOT NULL,
		address TEXT,
		booking_time TEXT NOT NULL,
		people INT NOT NULL,
		provider TEXT,
		action_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// -------------------------
// Users
// -------------------------

// CreateUser inserts a new account record.
func (r *PostgresRepository) CreateUser(ctx context.Context, id, email, hashedPassword string) (*model.User, error) {
	user := &model.User{}
	query := `
		INSERT INTO users (id, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, email, hashed_password, created_at`

	if err := r.db.GetContext(ctx, user, query, id, email, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByLogin finds a user by username or email. Returns nil when
// no such user exists.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	user := &model.User{}
	query := `
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE id = $1 OR email = $1`

	err := r.db.GetContext(ctx, user, query, login)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// -------------------------
// User preferences
// -------------------------

// GetPreferences returns the stored preference record, or nil when the
// user has none.
func (r *PostgresRepository) GetPreferences(ctx context.Context, userID string) (*model.UserPreferenceRecord, error) {
	record := &model.UserPreferenceRecord{}
	query := `SELECT preferences FROM user_preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, record, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return record, nil
}

// UpsertPreferences creates or replaces the preference record.
func (r *PostgresRepository) UpsertPreferences(ctx context.Context, userID string, record *model.UserPreferenceRecord) error {
	query := `
		INSERT INTO user_preferences (user_id, preferences, last_updated)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET preferences = EXCLUDED.preferences, last_updated = now()`

	if _, err := r.db.ExecContext(ctx, query, userID, record); err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// AddVisitedPlace appends a place name to the visited set, creating
// the record if needed. Duplicate names are kept out.
func (r *PostgresRepository) AddVisitedPlace(ctx context.Context, userID, placeName string) error {
	record, err := r.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	if record == nil {
		record = &model.UserPreferenceRecord{PlaceTypeAffinity: map[string]float64{}}
	}

	for _, name := range record.VisitedPlaces {
		if name == placeName {
			return nil
		}
	}
	record.VisitedPlaces = append(record.VisitedPlaces, placeName)

	return r.UpsertPreferences(ctx, userID, record)
}

// IncrementAffinity bumps the stored affinity counter for a category.
// The resulting weight never goes below zero.
func (r *PostgresRepository) IncrementAffinity(ctx context.Context, userID, placeType string, amount float64) error {
	record, err := r.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	if record == nil {
		record = &model.UserPreferenceRecord{PlaceTypeAffinity: map[string]float64{}}
	}
	if record.PlaceTypeAffinity == nil {
		record.PlaceTypeAffinity = map[string]float64{}
	}

	next := record.PlaceTypeAffinity[placeType] + amount
	if next < 0 {
		next = 0
	}
	record.PlaceTypeAffinity[placeType] = next

	return r.UpsertPreferences(ctx, userID, record)
}

// -------------------------
// Logs and bookings
// -------------------------

// LogRecommendation records one pipeline run.
func (r *PostgresRepository) LogRecommendation(ctx context.Context, entry *model.RecommendationLog) error {
	query := `
		INSERT INTO recommendation_logs (id, user_id, query, place_types, result_count, took_ms)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Query, pq.Array(entry.PlaceTypes), entry.ResultCount, entry.TookMs)
	if err != nil {
		return fmt.Errorf("failed to log recommendation: %w", err)
	}
	return nil
}

// CreateBooking stores a booking hand-off record.
func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, place_id, place_name, address, booking_time, people, provider, action_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.PlaceID, booking.PlaceName, booking.Address,
		booking.Time, booking.People, booking.Provider, booking.ActionURL)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

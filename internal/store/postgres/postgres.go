package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
	"pricegenie/backend/internal/store"
	"pricegenie/backend/internal/xid"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// migrate applies the embedded schema migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.ProfileRecord, error) {
	var (
		record   domain.ProfileRecord
		snapshot []byte
	)
	if err := row.Scan(&record.ID, &record.Name, &record.Owner, &snapshot, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &record.Snapshot); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", record.ID, err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return &record, nil
}

func encodeSnapshot(snapshot pricing.Snapshot) ([]byte, error) {
	if snapshot.Metadata == nil {
		return nil, store.ErrInvalidInput
	}
	return json.Marshal(snapshot)
}

func (s *Store) ListProfiles(ctx context.Context, limit int) ([]domain.ProfileRecord, error) {
	if limit < 1 {
		limit = 200
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner, snapshot, created_at, updated_at
		FROM profiles
		ORDER BY updated_at DESC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.ProfileRecord, 0, 32)
	for rows.Next() {
		record, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) GetProfile(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner, snapshot, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id)
	record, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *Store) CreateProfile(ctx context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	if strings.TrimSpace(record.ID) == "" {
		return nil, store.ErrInvalidInput
	}
	snapshot, err := encodeSnapshot(record.Snapshot)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, name, owner, snapshot, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, name, owner, snapshot, created_at, updated_at
	`, record.ID, record.Name, record.Owner, snapshot, record.CreatedAt, now)
	created, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// SaveProfile upserts a profile. An existing row keeps its created_at and,
// when record.Owner is empty, its owner.
func (s *Store) SaveProfile(ctx context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	if strings.TrimSpace(record.ID) == "" {
		return nil, store.ErrInvalidInput
	}
	snapshot, err := encodeSnapshot(record.Snapshot)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, name, owner, snapshot, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			owner = COALESCE(NULLIF(EXCLUDED.owner, ''), profiles.owner),
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at
		RETURNING id, name, owner, snapshot, created_at, updated_at
	`, record.ID, record.Name, record.Owner, snapshot, record.CreatedAt, now)
	return scanProfile(row)
}

// RenameProfile moves a profile to record.ID. Snapshot history follows via
// the cascading foreign key.
func (s *Store) RenameProfile(ctx context.Context, oldID string, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	if strings.TrimSpace(record.ID) == "" {
		return nil, store.ErrInvalidInput
	}
	snapshot, err := encodeSnapshot(record.Snapshot)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET id = $2,
			name = $3,
			owner = COALESCE(NULLIF($4, ''), owner),
			snapshot = $5,
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, owner, snapshot, created_at, updated_at
	`, oldID, record.ID, record.Name, record.Owner, snapshot)
	renamed, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	return renamed, nil
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateSnapshot(ctx context.Context, snapshot domain.ProfileSnapshot) (*domain.ProfileSnapshot, error) {
	encoded, err := encodeSnapshot(snapshot.Snapshot)
	if err != nil {
		return nil, err
	}
	if snapshot.ID == "" {
		snapshot.ID = xid.New("snap")
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_snapshots (id, profile_id, label, snapshot, created_by, created_at)
		SELECT $1, p.id, $3, $4, $5, $6
		FROM profiles p
		WHERE p.id = $2
	`, snapshot.ID, snapshot.ProfileID, snapshot.Label, encoded, snapshot.CreatedBy, snapshot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	created := snapshot
	created.Snapshot = snapshot.Snapshot.Clone()
	return &created, nil
}

func (s *Store) ListSnapshots(ctx context.Context, profileID string, limit int) ([]domain.ProfileSnapshot, error) {
	if limit < 1 {
		limit = 50
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`, profileID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, label, snapshot, created_by, created_at
		FROM profile_snapshots
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]domain.ProfileSnapshot, 0, limit)
	for rows.Next() {
		var (
			snap    domain.ProfileSnapshot
			payload []byte
		)
		if err := rows.Scan(&snap.ID, &snap.ProfileID, &snap.Label, &payload, &snap.CreatedBy, &snap.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &snap.Snapshot); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
		}
		snap.CreatedAt = snap.CreatedAt.UTC()
		history = append(history, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Store) CreateAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, entry.ID, entry.ActorUsername, entry.ActorRole, entry.Action, entry.EntityType, entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		WHERE created_at >= $1
			AND created_at < $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0, limit)
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(&entry.ID, &entry.ActorUsername, &entry.ActorRole, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = domain.RoleViewer
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,true,$4,now())
	`, user.Username, user.Password, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

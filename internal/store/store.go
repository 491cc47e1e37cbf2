package store

import (
	"context"
	"errors"
	"time"

	"pricegenie/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
)

type Repository interface {
	ListProfiles(ctx context.Context, limit int) ([]domain.ProfileRecord, error)
	GetProfile(ctx context.Context, id string) (*domain.ProfileRecord, error)
	CreateProfile(ctx context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error)
	SaveProfile(ctx context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error)
	RenameProfile(ctx context.Context, oldID string, record domain.ProfileRecord) (*domain.ProfileRecord, error)
	DeleteProfile(ctx context.Context, id string) error
	CreateSnapshot(ctx context.Context, snapshot domain.ProfileSnapshot) (*domain.ProfileSnapshot, error)
	ListSnapshots(ctx context.Context, profileID string, limit int) ([]domain.ProfileSnapshot, error)
	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error)
	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}

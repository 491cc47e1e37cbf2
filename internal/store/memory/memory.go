package memory

import (
	"context"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"pricegenie/backend/internal/domain"
	"pricegenie/backend/internal/pricing"
	"pricegenie/backend/internal/store"
	"pricegenie/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	profilesByID    map[string]domain.ProfileRecord
	snapshotsByID   map[string][]domain.ProfileSnapshot
	auditLogs       []domain.AuditLog
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials are read from SEED_ADMIN_PASSWORD, SEED_PLANNER_PASSWORD and
// SEED_VIEWER_PASSWORD. Unset values fall back to dev defaults with a warning.
func seedUsers() map[string]domain.UserAccount {
	seeds := []struct {
		username string
		envKey   string
		fallback string
		role     string
	}{
		{"admin", "SEED_ADMIN_PASSWORD", "admin123", domain.RoleAdmin},
		{"planner", "SEED_PLANNER_PASSWORD", "planner123", domain.RolePlanner},
		{"viewer", "SEED_VIEWER_PASSWORD", "viewer123", domain.RoleViewer},
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range seeds {
		password := os.Getenv(u.envKey)
		if password == "" {
			password = u.fallback
			log.Warn().Str("component", "memory-store").Str("user", u.username).
				Msgf("using default dev credentials, set %s to override", u.envKey)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Str("component", "memory-store").Msgf("failed to hash seed password for %s", u.username)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

// seedProfile is a small demo profile so a fresh server has something to show.
func seedProfile(now time.Time) domain.ProfileRecord {
	p := pricing.Initialize(pricing.ItemTypeProduct, pricing.WithClock(func() time.Time { return now }))
	_, _ = p.SetItemName("Banana Chips 250g")
	_, _ = p.SetItemCategory("Snacks")
	_, _ = p.SetItemDescription("Crispy sweetened saba banana chips")
	_, _ = p.SetTotalSupply(200)
	_, _ = p.SetPrice(85)
	p.SetListCostingBreakdown([]pricing.CostingItem{
		pricing.NewCostingItem("Saba Banana", "kg", 45, 60),
		pricing.NewCostingItem("Cooking Oil", "L", 110, 12),
		pricing.NewCostingItem("Brown Sugar", "kg", 70, 8),
		pricing.NewCostingItem("Packaging", "pc", 6.5, 200),
	})
	p.SetListOPEXBreakdown([]pricing.OPEXItem{
		{Label: "Stall rent", Type: pricing.OPEXRent, Amount: 3500},
	})
	p.Finalize()

	return domain.ProfileRecord{
		ID:        p.ID,
		Name:      p.Metadata.Name,
		Owner:     "planner",
		Snapshot:  p.ToJSON(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewSeeded() *Store {
	s := New()
	s.usersByUsername = seedUsers()
	record := seedProfile(time.Now().UTC())
	s.profilesByID[record.ID] = record
	return s
}

// New returns an empty store without seeded users or profiles.
func New() *Store {
	return &Store{
		profilesByID:    make(map[string]domain.ProfileRecord),
		snapshotsByID:   make(map[string][]domain.ProfileSnapshot),
		auditLogs:       make([]domain.AuditLog, 0, 128),
		usersByUsername: make(map[string]domain.UserAccount),
	}
}

func cloneRecord(record domain.ProfileRecord) domain.ProfileRecord {
	record.Snapshot = record.Snapshot.Clone()
	return record
}

func validRecord(record domain.ProfileRecord) bool {
	return strings.TrimSpace(record.ID) != "" && record.Snapshot.Metadata != nil
}

func (s *Store) ListProfiles(_ context.Context, limit int) ([]domain.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ProfileRecord, 0, len(s.profilesByID))
	for _, record := range s.profilesByID {
		result = append(result, cloneRecord(record))
	}
	slices.SortFunc(result, func(a, b domain.ProfileRecord) int {
		if a.UpdatedAt.Equal(b.UpdatedAt) {
			return strings.Compare(a.ID, b.ID)
		}
		if a.UpdatedAt.After(b.UpdatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) GetProfile(_ context.Context, id string) (*domain.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.profilesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	found := cloneRecord(record)
	return &found, nil
}

func (s *Store) CreateProfile(_ context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validRecord(record) {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.profilesByID[record.ID]; exists {
		return nil, store.ErrConflict
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	s.profilesByID[record.ID] = cloneRecord(record)
	created := cloneRecord(record)
	return &created, nil
}

// SaveProfile inserts or replaces a profile, keeping the original CreatedAt.
func (s *Store) SaveProfile(_ context.Context, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validRecord(record) {
		return nil, store.ErrInvalidInput
	}
	now := time.Now().UTC()
	if existing, ok := s.profilesByID[record.ID]; ok {
		record.CreatedAt = existing.CreatedAt
		if record.Owner == "" {
			record.Owner = existing.Owner
		}
	} else if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	s.profilesByID[record.ID] = cloneRecord(record)
	saved := cloneRecord(record)
	return &saved, nil
}

// RenameProfile moves a profile and its snapshot history to record.ID.
func (s *Store) RenameProfile(_ context.Context, oldID string, record domain.ProfileRecord) (*domain.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validRecord(record) {
		return nil, store.ErrInvalidInput
	}
	existing, ok := s.profilesByID[oldID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if _, clash := s.profilesByID[record.ID]; clash && record.ID != oldID {
		return nil, store.ErrConflict
	}

	record.CreatedAt = existing.CreatedAt
	if record.Owner == "" {
		record.Owner = existing.Owner
	}
	record.UpdatedAt = time.Now().UTC()

	delete(s.profilesByID, oldID)
	s.profilesByID[record.ID] = cloneRecord(record)
	if history, ok := s.snapshotsByID[oldID]; ok {
		delete(s.snapshotsByID, oldID)
		for i := range history {
			history[i].ProfileID = record.ID
		}
		s.snapshotsByID[record.ID] = history
	}
	renamed := cloneRecord(record)
	return &renamed, nil
}

func (s *Store) DeleteProfile(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profilesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.profilesByID, id)
	delete(s.snapshotsByID, id)
	return nil
}

func (s *Store) CreateSnapshot(_ context.Context, snapshot domain.ProfileSnapshot) (*domain.ProfileSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.Snapshot.Metadata == nil {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.profilesByID[snapshot.ProfileID]; !exists {
		return nil, store.ErrNotFound
	}
	if snapshot.ID == "" {
		snapshot.ID = xid.New("snap")
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	snapshot.Snapshot = snapshot.Snapshot.Clone()
	s.snapshotsByID[snapshot.ProfileID] = append(s.snapshotsByID[snapshot.ProfileID], snapshot)

	created := snapshot
	created.Snapshot = snapshot.Snapshot.Clone()
	return &created, nil
}

func (s *Store) ListSnapshots(_ context.Context, profileID string, limit int) ([]domain.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.profilesByID[profileID]; !exists {
		return nil, store.ErrNotFound
	}
	history := s.snapshotsByID[profileID]
	result := make([]domain.ProfileSnapshot, 0, len(history))
	for _, snap := range history {
		snap.Snapshot = snap.Snapshot.Clone()
		result = append(result, snap)
	}
	slices.SortFunc(result, func(a, b domain.ProfileSnapshot) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return strings.Compare(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CreateAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AuditLog, 0, 64)
	for _, entry := range s.auditLogs {
		if entry.CreatedAt.Before(from) || !entry.CreatedAt.Before(to) {
			continue
		}
		result = append(result, entry)
	}

	slices.SortFunc(result, func(a, b domain.AuditLog) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return strings.Compare(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(strings.TrimSpace(user.Username))
	if username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if _, exists := s.usersByUsername[username]; exists {
		return store.ErrConflict
	}
	user.Username = username
	if user.Role == "" {
		user.Role = domain.RoleViewer
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, user := range s.usersByUsername {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}
	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}

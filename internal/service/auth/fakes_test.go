package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepo used by the service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User

	createErr        error
	setPasswordCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	user.ID = uuid.New()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id uuid.UUID, patch *models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}

	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.DateOfBirth != nil {
		dob := *patch.DateOfBirth
		u.DateOfBirth = &dob
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.Country != nil {
		u.Country = *patch.Country
	}

	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SetPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	f.setPasswordCalls++
	return nil
}

func (f *fakeUserRepo) add(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
}

// fakeBlacklist is an in-memory BlacklistRepo.
type fakeBlacklist struct {
	mu      sync.Mutex
	records map[uuid.UUID]*models.BlacklistedToken
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{records: make(map[uuid.UUID]*models.BlacklistedToken)}
}

func (f *fakeBlacklist) Add(_ context.Context, record *models.BlacklistedToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.ID] = record
	return nil
}

func (f *fakeBlacklist) Exists(_ context.Context, tokenID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[tokenID]
	return ok, nil
}

// fakeTxManager runs the function directly, without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu         sync.Mutex
	registered []string
	changed    []string
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, user *models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, user.Email)
	return nil
}

func (p *recordingPublisher) PublishPasswordChanged(_ context.Context, user *models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changed = append(p.changed, user.Email)
	return nil
}

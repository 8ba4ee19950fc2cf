package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
	"github.com/openiam/iam-service/internal/core/ports"
)

var t0 = time.Unix(1700000000, 0).UTC()

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	c := clone(user)
	c.ID = r.nextID
	r.users[c.ID] = clone(c)
	return c, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = clone(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int64) ([]domain.User, error) {
	var out []domain.User
	for id := int64(1); id <= r.nextID && int64(len(out)) < skip+limit; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	if skip >= int64(len(out)) {
		return nil, nil
	}
	return out[skip:], nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyAttempts(context.Context, string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(context.Context, string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}

type fixture struct {
	repo     *stubUserRepo
	throttle *stubThrottle
	codec    *auth.ClaimsCodec
	svc      ports.IdentityService
}

func newFixture() *fixture {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	codec := auth.NewClaimsCodec("secret", 30*time.Minute)
	issuer := auth.NewTokenIssuer(codec, func() time.Time { return t0 })
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	svc := NewIdentityService(repo, hasher, issuer, throttle, zerolog.Nop())
	return &fixture{repo: repo, throttle: throttle, codec: codec, svc: svc}
}

func (f *fixture) register(t *testing.T, email, name, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		FullName: name,
		Password: password,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func TestIdentityService_Register(t *testing.T) {
	f := newFixture()

	user := f.register(t, "a@x.com", "A", "password1", "")
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if user.PasswordHash == "password1" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestIdentityService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()

	f.register(t, "a@x.com", "A", "password1", "")
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Email:    "a@x.com",
		FullName: "B",
		Password: "password2",
		Role:     domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestIdentityService_Login_EmbedsRole(t *testing.T) {
	f := newFixture()
	f.register(t, "admin@example.com", "Admin User", "Admin@123", domain.RoleAdmin)

	token, err := f.svc.Login(context.Background(), "admin@example.com", "Admin@123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := f.codec.Decode(token, t0)
	if err != nil {
		t.Fatalf("issued token does not decode: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("embedded role = %q, want admin", claims.Role)
	}
	if claims.Subject != "admin@example.com" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if f.throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", f.throttle.resets)
	}
}

// Unknown emails and wrong passwords must be indistinguishable.
func TestIdentityService_Login_UniformFailure(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "A", "password1", "")

	if _, err := f.svc.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@x.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if f.throttle.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", f.throttle.failures)
	}
}

func TestIdentityService_Login_Throttled(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "A", "password1", "")
	f.throttle.blocked = true

	if _, err := f.svc.Login(context.Background(), "a@x.com", "password1"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestIdentityService_ChangePassword_WrongCurrentLeavesHash(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "A", "old-password", "")

	user, err := f.repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	err = f.svc.ChangePassword(context.Background(), user, "not-the-password", "new-password")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// The stored hash is untouched: the old password still logs in.
	if _, err := f.svc.Login(context.Background(), "a@x.com", "old-password"); err != nil {
		t.Fatalf("old password no longer valid: %v", err)
	}
}

func TestIdentityService_ChangePassword_Success(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "A", "old-password", "")

	user, err := f.repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if err := f.svc.ChangePassword(context.Background(), user, "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := f.svc.Login(context.Background(), "a@x.com", "old-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still valid after change")
	}
	if _, err := f.svc.Login(context.Background(), "a@x.com", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestIdentityService_UpdateProfile_PartialFields(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "Old Name", "password1", "")

	user, err := f.repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	newName := "New Name"
	updated, err := f.svc.UpdateProfile(context.Background(), user, ports.UpdateProfileInput{FullName: &newName})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != "New Name" {
		t.Fatalf("full name not updated: %q", updated.FullName)
	}
	if updated.Email != "a@x.com" {
		t.Fatalf("email changed without being requested: %q", updated.Email)
	}
}

func TestIdentityService_UpdateUserRole(t *testing.T) {
	f := newFixture()
	created := f.register(t, "a@x.com", "A", "password1", "")

	// nil role means no change requested.
	unchanged, err := f.svc.UpdateUserRole(context.Background(), created.ID, ports.UpdateRoleInput{})
	if err != nil {
		t.Fatalf("update with nil role: %v", err)
	}
	if unchanged.Role != domain.RoleUser {
		t.Fatalf("role changed without request: %s", unchanged.Role)
	}

	legal := domain.RoleLegal
	updated, err := f.svc.UpdateUserRole(context.Background(), created.ID, ports.UpdateRoleInput{Role: &legal})
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleLegal {
		t.Fatalf("role = %s, want legal", updated.Role)
	}

	if _, err := f.svc.UpdateUserRole(context.Background(), 9999, ports.UpdateRoleInput{Role: &legal}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown id, got %v", err)
	}
}

func TestIdentityService_DeleteUser(t *testing.T) {
	f := newFixture()
	created := f.register(t, "a@x.com", "A", "password1", "")

	if err := f.svc.DeleteUser(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.DeleteUser(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestIdentityService_ListUsers_Paging(t *testing.T) {
	f := newFixture()
	f.register(t, "a@x.com", "A", "password1", "")
	f.register(t, "b@x.com", "B", "password1", "")
	f.register(t, "c@x.com", "C", "password1", "")

	page, err := f.svc.ListUsers(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page))
	}
	if page[0].Email != "b@x.com" || page[1].Email != "c@x.com" {
		t.Fatalf("unexpected page order: %+v", page)
	}
}

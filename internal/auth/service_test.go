package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

type mockRepo struct {
	users  map[string]*User
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: map[string]*User{}, nextID: 1}
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, user User) (*User, error) {
	if _, ok := m.users[user.Email]; ok {
		return nil, shared.ErrAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = &user
	return &user, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := newMockRepo()
	return NewService(repo, NewTokenStore(client, time.Hour)), repo
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, repo := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ada@example.com", resp.Email)

	// The stored hash must not be the plaintext password.
	stored := repo.users["ada@example.com"]
	require.NotEqual(t, "correct horse", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	req := RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestLoginAndResolve(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	user, err := svc.Resolve(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "ada@example.com", user.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))
	_, err = svc.Resolve(ctx, resp.Token)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

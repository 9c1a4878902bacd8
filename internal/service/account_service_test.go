package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

func TestSignupAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	svc := &accountService{userRepo: f.users, cost: bcrypt.MinCost}

	u, err := svc.Signup(ctx, SignupInput{Username: " leo ", Password: "war-and-peace", FirstName: "Leo"})
	require.NoError(t, err)
	assert.Equal(t, "leo", u.Username)
	assert.NotEqual(t, "war-and-peace", u.PasswordHash)

	_, err = svc.Signup(ctx, SignupInput{Username: "leo", Password: "x"})
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "username", fe.Field)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := svc.Authenticate(ctx, "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ghost", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupRejectsBadUsernames(t *testing.T) {
	f := newFixture(t)
	svc := &accountService{userRepo: f.users, cost: bcrypt.MinCost}

	for _, name := range []string{"   ", "", "a/b", "who?", "two words"} {
		_, err := svc.Signup(ctx, SignupInput{Username: name, Password: "pw"})
		fe, ok := AsFieldError(err)
		require.True(t, ok, name)
		assert.Equal(t, "username", fe.Field, name)
	}
	exists, err := f.users.ExistsByUsername(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)

	for _, name := range []string{"leo.tolstoy", "anna_k", "a+b@x-y", "Лев"} {
		_, err := svc.Signup(ctx, SignupInput{Username: name, Password: "pw"})
		assert.NoError(t, err, name)
	}
}

func TestSignupRejectsLongPassword(t *testing.T) {
	f := newFixture(t)
	svc := &accountService{userRepo: f.users, cost: bcrypt.MinCost}

	_, err := svc.Signup(ctx, SignupInput{Username: "leo", Password: strings.Repeat("x", 80)})
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "password", fe.Field)

	_, err = svc.Signup(ctx, SignupInput{Username: "leo", Password: strings.Repeat("x", 72)})
	assert.NoError(t, err)
}

// staleUsers 模拟并发注册：存在性检查总是返回 false
type staleUsers struct {
	repository.UserRepository
}

func (staleUsers) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }

func TestSignupDuplicateInsertIsFieldError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.users.Create(ctx, &model.User{Username: "leo", PasswordHash: "h"}))
	svc := &accountService{userRepo: staleUsers{f.users}, cost: bcrypt.MinCost}

	_, err := svc.Signup(ctx, SignupInput{Username: "leo", Password: "pw"})
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "username", fe.Field)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

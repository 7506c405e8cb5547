package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*UserService, *fakeUserRepo, *fakeResultRepo) {
	users := newFakeUserRepo()
	results := &fakeResultRepo{}
	svc := NewUserService(users, results, &fakeTransactor{results: results})
	svc.hashCost = bcrypt.MinCost
	return svc, users, results
}

func TestCreateHashesPassword(t *testing.T) {
	svc, users, _ := newTestUserService()

	user, err := svc.Create(context.Background(), UserInput{
		Email:    "Student@Example.com",
		Password: "pass123",
	})
	require.NoError(t, err)

	stored := users.users[user.ID]
	assert.Equal(t, "student@example.com", stored.Email)
	assert.Equal(t, "student", stored.Nickname)
	assert.NotEqual(t, "pass123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestUserService()

	for _, in := range []UserInput{
		{Email: "not-an-email", Password: "pass123"},
		{Email: "a@example.com", Password: "123"},
		{Email: "", Password: "pass123"},
	} {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, in.Email)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Create(context.Background(), UserInput{Email: "a@example.com", Password: "pass123"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), UserInput{Email: "A@example.com", Password: "other123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestUserService()

	created, err := svc.Create(context.Background(), UserInput{
		Email:    "student@example.com",
		Password: "pass123",
		Nickname: "Stu",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), " STUDENT@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "Stu", user.Nickname)

	_, err = svc.Authenticate(context.Background(), "student@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	svc, users, _ := newTestUserService()

	created, err := svc.EnsureAdmin(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	require.Len(t, users.users, 1)
	for _, u := range users.users {
		assert.True(t, u.IsAdmin)
	}
}

func TestDeleteRemovesHistory(t *testing.T) {
	svc, users, results := newTestUserService()

	user, err := svc.Create(context.Background(), UserInput{Email: "a@example.com", Password: "pass123"})
	require.NoError(t, err)
	results.record(user.ID, 1, true, false)
	results.record(user.ID+1, 1, true)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	assert.Empty(t, users.users)
	assert.Empty(t, results.forUser(user.ID))
	assert.Len(t, results.forUser(user.ID+1), 1)

	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID), ErrUserNotFound)

	_, err = svc.Get(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package authsvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"bookmarket/model"
	"bookmarket/util/hash"
	jwtutil "bookmarket/util/jwt"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *model.User) error
	byEmailFn    func(ctx context.Context, email string) (*model.User, error)
	byIDFn       func(ctx context.Context, id int64) (*model.User, error)
	byUsernameFn func(ctx context.Context, username string) (*model.User, error)
	updateFn     func(ctx context.Context, u *model.User) (bool, error)
	deleteFn     func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmailFn(ctx, email)
}

func (m *mockUserRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

func (m *mockUserRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.byUsernameFn(ctx, username)
}

func (m *mockUserRepo) Update(ctx context.Context, u *model.User) (bool, error) {
	return m.updateFn(ctx, u)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

const testSecret = "test-secret"

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 7
			return nil
		},
	}
	svc := New(repo, testSecret, 24)

	u, token, err := svc.Register(context.Background(), model.RegisterReq{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "Ada@Example.COM",
		Username:    "ada",
		Password:    "secret1",
		PhoneNumber: "1234567890",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, model.RoleSellerBuyer, u.Role)
	require.NotEqual(t, "secret1", u.PasswordHash)

	claims, err := jwtutil.ParseAuth("Bearer "+token, testSecret)
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, string(model.RoleSellerBuyer), claims["role"])
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := New(&mockUserRepo{}, testSecret, 24)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "a@b.com",
		Username: "ada",
		Password: "short",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			}
		},
	}
	svc := New(repo, testSecret, 24)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "a@b.com",
		Username: "ada",
		Password: "secret1",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			}
		},
	}
	svc := New(repo, testSecret, 24)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "a@b.com",
		Username: "ada",
		Password: "secret1",
	})
	require.Error(t, err)
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestLogin_Success(t *testing.T) {
	hashed, err := hash.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			require.Equal(t, "ada@example.com", email)
			return &model.User{ID: 7, Email: email, PasswordHash: hashed, Role: model.RoleSellerBuyer}, nil
		},
	}
	svc := New(repo, testSecret, 24)

	u, token, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "Ada@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.NotEmpty(t, token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := New(repo, testSecret, 24)

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestUpdate_Success(t *testing.T) {
	oldHash, err := hash.HashPassword("old-secret")
	require.NoError(t, err)

	var saved *model.User
	repo := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 7, Email: "ada@example.com", Username: "ada", PasswordHash: oldHash}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) (bool, error) {
			saved = u
			return true, nil
		},
	}
	svc := New(repo, testSecret, 24)

	u, err := svc.Update(context.Background(), 7, model.UpdateReq{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "New@Example.COM",
		Username:    "ada2",
		PhoneNumber: "0987654321",
	})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", u.Email)
	require.Equal(t, "ada2", u.Username)
	require.NotNil(t, saved)
	// blank password keeps the old hash
	require.Equal(t, oldHash, saved.PasswordHash)
}

func TestUpdate_RehashesNewPassword(t *testing.T) {
	oldHash, err := hash.HashPassword("old-secret")
	require.NoError(t, err)

	var saved *model.User
	repo := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 7, Email: "ada@example.com", Username: "ada", PasswordHash: oldHash}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) (bool, error) {
			saved = u
			return true, nil
		},
	}
	svc := New(repo, testSecret, 24)

	_, err = svc.Update(context.Background(), 7, model.UpdateReq{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Username:    "ada",
		Password:    "new-secret",
		PhoneNumber: "0987654321",
	})
	require.NoError(t, err)
	require.NotEqual(t, oldHash, saved.PasswordHash)
	require.True(t, hash.Check(saved.PasswordHash, "new-secret"))
}

func TestUpdate_MissingUser(t *testing.T) {
	repo := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, nil
		},
	}
	svc := New(repo, testSecret, 24)

	_, err := svc.Update(context.Background(), 99, model.UpdateReq{
		Email:    "a@b.com",
		Username: "ada",
	})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_DuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 7, Email: "ada@example.com", Username: "ada"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) (bool, error) {
			return false, &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			}
		},
	}
	svc := New(repo, testSecret, 24)

	_, err := svc.Update(context.Background(), 7, model.UpdateReq{
		Email:    "ada@example.com",
		Username: "taken",
	})
	require.Error(t, err)
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestDelete_Success(t *testing.T) {
	var deleted int64
	repo := &mockUserRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			deleted = id
			return true, nil
		},
	}
	svc := New(repo, testSecret, 24)

	require.NoError(t, svc.Delete(context.Background(), 7))
	require.Equal(t, int64(7), deleted)
}

func TestDelete_MissingUser(t *testing.T) {
	repo := &mockUserRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(repo, testSecret, 24)

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestByUsername(t *testing.T) {
	repo := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "ada" {
				return &model.User{ID: 7, Username: "ada"}, nil
			}
			return nil, nil
		},
	}
	svc := New(repo, testSecret, 24)

	u, err := svc.ByUsername(context.Background(), "ada")
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)

	_, err = svc.ByUsername(context.Background(), "nobody")
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := hash.HashPassword("secret1")
	require.NoError(t, err)

	repo := &mockUserRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(repo, testSecret, 24)

	_, _, err = svc.Login(context.Background(), model.LoginReq{
		Email:    "ada@example.com",
		Password: "not-it",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

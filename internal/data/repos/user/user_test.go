package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	hash := "hash"
	created, err := repo.Create(dbc, []*types.User{
		{
			Email:        "  UserRepo@Example.com ",
			Name:         "Ada",
			PasswordHash: &hash,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result %+v", created)
	}
	if created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: email not normalized: %q", created[0].Email)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Name != "Ada" {
		t.Fatalf("GetByID: got %+v err %v", got, err)
	}

	byEmail, err := repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil || byEmail == nil || byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: got %+v err %v", byEmail, err)
	}

	missing, err := repo.GetByEmail(dbc, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("GetByEmail (missing): got %+v err %v", missing, err)
	}

	exists, err := repo.EmailExists(dbc, "userrepo@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: %v %v", exists, err)
	}

	_, err = repo.Create(dbc, []*types.User{{Email: "userrepo@example.com", Name: "Dup"}})
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate: expected ErrDuplicatedKey, got %v", err)
	}
}

func TestMarkEmailVerified(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{{Email: "verify@example.com", Name: "Vera"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].Verified() {
		t.Fatalf("new user should be unverified")
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := repo.MarkEmailVerified(dbc, created[0].ID, at); err != nil {
		t.Fatalf("MarkEmailVerified: %v", err)
	}
	got, _ := repo.GetByID(dbc, created[0].ID)
	if !got.Verified() || !got.EmailVerifiedAt.Equal(at) {
		t.Fatalf("expected verified at %s, got %+v", at, got.EmailVerifiedAt)
	}

	// second call keeps the original timestamp
	if err := repo.MarkEmailVerified(dbc, created[0].ID, at.Add(time.Hour)); err != nil {
		t.Fatalf("MarkEmailVerified again: %v", err)
	}
	got, _ = repo.GetByID(dbc, created[0].ID)
	if !got.EmailVerifiedAt.Equal(at) {
		t.Fatalf("verification timestamp changed: %s", got.EmailVerifiedAt)
	}
}

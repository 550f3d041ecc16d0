package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/Furiouss38/podv2/internal/repository"
	"github.com/Furiouss38/podv2/pkg/hash"
)

func newTestDirectoryService(mock pgxmock.PgxPoolIface) *DirectoryService {
	return NewDirectoryService(repository.NewOwnerRepo(mock), repository.NewGroupRepo(mock), "s3cret")
}

func TestDirectoryService_CreateOwnerDerivesHashkey(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestDirectoryService(mock)
	want := hash.OwnerHashkey("s3cret", "jdoe")

	mock.ExpectQuery("INSERT INTO owners").WithArgs("jdoe", want).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	owner, err := svc.CreateOwner(context.Background(), "  jdoe ")
	if err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}
	if owner.ID != 7 || owner.Username != "jdoe" {
		t.Errorf("owner = %+v", owner)
	}
	if owner.Hashkey != want || owner.Hashkey != hash.SHA256Hex("s3cretjdoe") {
		t.Errorf("Hashkey = %q, want %q", owner.Hashkey, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDirectoryService_CreateOwnerDuplicate(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestDirectoryService(mock)

	mock.ExpectQuery("INSERT INTO owners").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "owners_username_key"})

	if _, err := svc.CreateOwner(context.Background(), "jdoe"); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestDirectoryService_CreateGroupTrimsName(t *testing.T) {
	mock := newMockPool(t)
	svc := newTestDirectoryService(mock)

	mock.ExpectQuery("INSERT INTO groups").WithArgs("Staff").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	g, err := svc.CreateGroup(context.Background(), " Staff\n")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.ID != 3 || g.Name != "Staff" {
		t.Errorf("group = %+v", g)
	}
}

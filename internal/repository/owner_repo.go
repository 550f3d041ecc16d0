package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Furiouss38/podv2/internal/model"
)

type OwnerRepo struct {
	db DB
}

func NewOwnerRepo(db DB) *OwnerRepo {
	return &OwnerRepo{db: db}
}

// Create inserts a new owner. Hashkey must already be set.
func (r *OwnerRepo) Create(ctx context.Context, o *model.Owner) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO owners (username, hashkey) VALUES ($1, $2)
		RETURNING id`, o.Username, o.Hashkey).Scan(&o.ID)
	return mapError(err)
}

// FindByID returns a single owner.
func (r *OwnerRepo) FindByID(ctx context.Context, id int64) (*model.Owner, error) {
	var o model.Owner
	err := r.db.QueryRow(ctx, `SELECT id, username, hashkey FROM owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Username, &o.Hashkey)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all owners ordered by username.
func (r *OwnerRepo) List(ctx context.Context) ([]model.Owner, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, hashkey FROM owners ORDER BY username`)
	if err != nil {
		return nil, err
	}
	owners, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Owner])
	if err != nil {
		return nil, err
	}
	if owners == nil {
		owners = []model.Owner{}
	}
	return owners, nil
}

type GroupRepo struct {
	db DB
}

func NewGroupRepo(db DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create inserts a new group.
func (r *GroupRepo) Create(ctx context.Context, g *model.Group) error {
	err := r.db.QueryRow(ctx, `INSERT INTO groups (name) VALUES ($1) RETURNING id`, g.Name).Scan(&g.ID)
	return mapError(err)
}

// List returns all groups ordered by name.
func (r *GroupRepo) List(ctx context.Context) ([]model.Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	groups, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Group])
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}

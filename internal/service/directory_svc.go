package service

import (
	"context"
	"strings"

	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
	"github.com/Furiouss38/podv2/pkg/hash"
)

// DirectoryService manages the owners and groups videos and channels refer to.
type DirectoryService struct {
	owners *repository.OwnerRepo
	groups *repository.GroupRepo
	secret string
}

func NewDirectoryService(owners *repository.OwnerRepo, groups *repository.GroupRepo, secret string) *DirectoryService {
	return &DirectoryService{owners: owners, groups: groups, secret: secret}
}

// CreateOwner registers an owner and derives its storage hashkey.
func (s *DirectoryService) CreateOwner(ctx context.Context, username string) (*model.Owner, error) {
	username = strings.TrimSpace(username)
	o := &model.Owner{
		Username: username,
		Hashkey:  hash.OwnerHashkey(s.secret, username),
	}
	if err := s.owners.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DirectoryService) GetOwner(ctx context.Context, id int64) (*model.Owner, error) {
	return s.owners.FindByID(ctx, id)
}

func (s *DirectoryService) ListOwners(ctx context.Context) ([]model.Owner, error) {
	return s.owners.List(ctx)
}

func (s *DirectoryService) CreateGroup(ctx context.Context, name string) (*model.Group, error) {
	g := &model.Group{Name: strings.TrimSpace(name)}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *DirectoryService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.groups.List(ctx)
}

package service

import (
	"context"

	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

// TaxonService manages one classification table (types or disciplines).
type TaxonService struct {
	repo *repository.TaxonRepo
	kind string
}

func NewTaxonService(repo *repository.TaxonRepo, kind string) *TaxonService {
	return &TaxonService{repo: repo, kind: kind}
}

// Kind names what this service manages ("type", "discipline").
func (s *TaxonService) Kind() string {
	return s.kind
}

func (s *TaxonService) List(ctx context.Context) ([]model.Taxon, error) {
	return s.repo.List(ctx)
}

func (s *TaxonService) Get(ctx context.Context, id int64) (*model.Taxon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaxonService) Save(ctx context.Context, t *model.Taxon) error {
	err := s.repo.Save(ctx, t)
	metrics.RecordSaves.WithLabelValues(s.kind, metrics.Outcome(err)).Inc()
	return err
}

func (s *TaxonService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

package discovery

import (
	"context"

	commerceRepo "closetcircle/database/repository/commerce"
	"closetcircle/models"

	"go.uber.org/zap"
)

// DiscoveryService runs searches and walks the matched results of one conversation.
// Implementations hold no per-conversation state: the session comes in and a patch goes out.
type DiscoveryService interface {
	Search(ctx context.Context, entities []models.Entity) (models.Reply, error)
	Next(ctx context.Context, state models.SessionState) (models.Reply, error)
}

// DefaultDiscoveryService implements DiscoveryService against a catalog repository.
type DefaultDiscoveryService struct {
	Catalog commerceRepo.CatalogRepository
	Logger  *zap.Logger
}

func NewDiscoveryService(catalog commerceRepo.CatalogRepository, logger *zap.Logger) *DefaultDiscoveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDiscoveryService{Catalog: catalog, Logger: logger}
}

func (s *DefaultDiscoveryService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

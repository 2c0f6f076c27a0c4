package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
	"go.uber.org/zap"
)

// AccessorialLister loads the accessorial table in display order
type AccessorialLister interface {
	List(ctx context.Context) ([]domain.Accessorial, error)
}

// AccessorialCatalog caches the accessorial table until Invalidate is called.
// Admin edits to the table must invalidate it.
type AccessorialCatalog struct {
	repo    AccessorialLister
	logger  *zap.Logger
	mu      sync.RWMutex
	catalog *pricing.Catalog
}

func NewAccessorialCatalog(repo AccessorialLister, logger *zap.Logger) *AccessorialCatalog {
	return &AccessorialCatalog{repo: repo, logger: logger}
}

// Get returns the cached catalog, loading it on first use
func (c *AccessorialCatalog) Get(ctx context.Context) (*pricing.Catalog, error) {
	c.mu.RLock()
	catalog := c.catalog
	c.mu.RUnlock()
	if catalog != nil {
		return catalog, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog != nil {
		return c.catalog, nil
	}

	rows, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accessorials: %w", err)
	}
	c.catalog = pricing.NewCatalog(rows)
	c.logger.Debug("Accessorial catalog loaded", zap.Int("count", c.catalog.Len()))
	return c.catalog, nil
}

// Options lists the accessorial names selectable for a quote type
func (c *AccessorialCatalog) Options(ctx context.Context, quoteType domain.QuoteType) ([]string, error) {
	catalog, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Options(quoteType), nil
}

// Invalidate drops the cached catalog
func (c *AccessorialCatalog) Invalidate() {
	c.mu.Lock()
	c.catalog = nil
	c.mu.Unlock()
}

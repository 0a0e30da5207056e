package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
)

// MarketPriceService serves the latest price per crop from a TTL cache that is
// dropped for a crop whenever one of its prices is written.
type MarketPriceService struct {
	monitoring *repository.MonitoringRepository
	cache      *cache.Cache
}

func NewMarketPriceService(monitoring *repository.MonitoringRepository, records *RecordService[model.MarketPrice, *model.MarketPrice], ttl time.Duration) *MarketPriceService {
	s := &MarketPriceService{
		monitoring: monitoring,
		cache:      cache.New(ttl, 2*ttl),
	}
	records.OnWrite(func(p *model.MarketPrice) {
		s.cache.Delete(p.CropID)
	})
	return s
}

// Latest returns the most recent price of a crop.
func (s *MarketPriceService) Latest(ctx context.Context, cropID string) (*model.MarketPrice, error) {
	if cached, ok := s.cache.Get(cropID); ok {
		price := *cached.(*model.MarketPrice)
		return &price, nil
	}

	price, err := s.monitoring.LatestMarketPrice(ctx, cropID)
	if err != nil {
		return nil, err
	}
	stored := *price
	s.cache.SetDefault(cropID, &stored)
	return price, nil
}

// Cached reports how many crops currently have a cached price.
func (s *MarketPriceService) Cached() int {
	return s.cache.ItemCount()
}

package service

import (
	"context"
)

type Stats struct {
	TotalProducts int64            `json:"total_products"`
	TotalUsers    int64            `json:"total_users"`
	TotalRequests int64            `json:"total_requests"`
	Families      map[string]int64 `json:"families"`
}

func (s *CatalogueService) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.Repo.CountRequests(ctx)
	if err != nil {
		return nil, err
	}
	byFamily, err := s.Repo.CountProductsByFamily(ctx)
	if err != nil {
		return nil, err
	}

	families := make(map[string]int64, len(byFamily))
	for _, fc := range byFamily {
		families[fc.Family] = fc.Count
	}

	return &Stats{
		TotalProducts: products,
		TotalUsers:    users,
		TotalRequests: requests,
		Families:      families,
	}, nil
}

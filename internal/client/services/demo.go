package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/client/kvstore"
)

// DemoService keeps the free-form demo value in the local store.
type DemoService interface {
	Set(ctx context.Context, value string) error
	// Get returns "" when no value has been set.
	Get(ctx context.Context) (string, error)
}

type demoService struct {
	local kvstore.Repository
}

func NewDemoService(local kvstore.Repository) DemoService {
	return &demoService{local: local}
}

func (d *demoService) Set(ctx context.Context, value string) error {
	if err := kvstore.SetJSON(ctx, d.local, kvstore.KeyDemo, value); err != nil {
		return fmt.Errorf("failed to save demo value: %w", err)
	}
	return nil
}

func (d *demoService) Get(ctx context.Context) (string, error) {
	var value string
	if _, err := kvstore.GetJSON(ctx, d.local, kvstore.KeyDemo, &value); err != nil {
		return "", fmt.Errorf("failed to load demo value: %w", err)
	}
	return value, nil
}

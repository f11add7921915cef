package config

import (
	"context"
	"fmt"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
	"gopkg.in/ini.v1"
)

// InventoryRegistry reads inventory snapshots from an INI file with one
// section per period:
//
//	[2025-04]
//	opening = 38.000,00
//	closing = 37.000,00
type InventoryRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSnapshot(ctx context.Context, profile string) (domain.InventorySnapshot, error)
}

type inventoryRegistry struct {
	cfg *ini.File
}

func NewInventoryRegistry(path string) (InventoryRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory file: %w", err)
	}
	return &inventoryRegistry{cfg: cfg}, nil
}

func (r *inventoryRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *inventoryRegistry) GetSnapshot(_ context.Context, profile string) (domain.InventorySnapshot, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil {
		return domain.InventorySnapshot{}, fmt.Errorf("inventory profile %s not found", profile)
	}

	for _, key := range []string{metrics.FieldOpening, metrics.FieldClosing} {
		if !section.HasKey(key) {
			return domain.InventorySnapshot{}, fmt.Errorf("inventory profile %s: missing %s", profile, key)
		}
	}

	snapshot, err := metrics.ParseInventory(
		section.Key(metrics.FieldOpening).String(),
		section.Key(metrics.FieldClosing).String(),
	)
	if err != nil {
		return domain.InventorySnapshot{}, fmt.Errorf("inventory profile %s: %w", profile, err)
	}
	return snapshot, nil
}

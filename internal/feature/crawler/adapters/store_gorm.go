// Package adapters provides the persistence implementations for the crawler
// feature.
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/feature/crawler/domain"
	"yfsymbols/internal/feature/crawler/usecase"
)

const upsertBatchSize = 500

// symbolStoreGorm is the gorm implementation of the SymbolStore interface.
type symbolStoreGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolStore = (*symbolStoreGorm)(nil)

// NewSymbolStore creates a store writer on the given DB handle. The writer
// holds exclusive write access for the duration of each reconcile
// transaction; readers never observe a half-applied crawl.
func NewSymbolStore(db *gorm.DB) *symbolStoreGorm {
	return &symbolStoreGorm{db: db}
}

// Reconcile applies the candidate set in a single transaction: new natural
// keys are inserted, existing keys are updated in place, and keys absent
// from the candidates are retained unless prune is set. Any error rolls the
// whole transaction back.
func (s *symbolStoreGorm) Reconcile(ctx context.Context, candidates []entity.Symbol, prune bool) (usecase.ReconcileStats, error) {
	var stats usecase.ReconcileStats

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entity.Symbol
		if err := tx.Select("id", "ticker", "exchange").Find(&existing).Error; err != nil {
			return err
		}
		existingIDs := make(map[entity.Key]uint, len(existing))
		for _, e := range existing {
			existingIDs[e.Key()] = e.ID
		}

		seen := make(map[entity.Key]struct{}, len(candidates))
		for _, c := range candidates {
			seen[c.Key()] = struct{}{}
			if _, ok := existingIDs[c.Key()]; ok {
				stats.Updated++
			} else {
				stats.Added++
			}
		}

		if len(candidates) > 0 {
			onConflict := clause.OnConflict{
				Columns: []clause.Column{{Name: "ticker"}, {Name: "exchange"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "asset_class", "category", "type_code", "updated_at",
				}),
			}
			if err := tx.Clauses(onConflict).CreateInBatches(candidates, upsertBatchSize).Error; err != nil {
				return err
			}
		}

		if prune {
			var stale []uint
			for key, id := range existingIDs {
				if _, ok := seen[key]; !ok {
					stale = append(stale, id)
				}
			}
			if len(stale) > 0 {
				if err := tx.Delete(&entity.Symbol{}, stale).Error; err != nil {
					return err
				}
				stats.Pruned = len(stale)
			}
		}
		return nil
	})
	if err != nil {
		return usecase.ReconcileStats{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return stats, nil
}

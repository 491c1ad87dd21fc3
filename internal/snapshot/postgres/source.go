// internal/snapshot/postgres/source.go

// Package postgres loads the snapshot from pre-seeded tables (see
// cmd/seed). The read path is SELECT-only; the core never writes.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seoulbrew/sitescope/internal/domain"
	"github.com/seoulbrew/sitescope/internal/snapshot"
)

type Source struct {
	db *DB
}

func NewSource(db *DB) *Source {
	return &Source{db: db}
}

type dongRow struct {
	domain.DongStats
}

type brandRow struct {
	Name     string `db:"name"`
	Color    string `db:"color"`
	Position int    `db:"position"`
}

type brandCountRow struct {
	DongCode   string `db:"dong_code"`
	Brand      string `db:"brand"`
	StoreCount int    `db:"store_count"`
}

type brandStatsRow struct {
	Brand string `db:"brand"`
	domain.BrandSummary
}

type detailRow struct {
	DongNameNorm string `db:"dong_name_norm"`
	snapshot.DetailMetrics
}

func (s *Source) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	var (
		raw     snapshot.RawSnapshot
		overlay snapshot.Overlay
		id      string
	)

	err := s.db.withConn(ctx, func(ctx context.Context) error {
		if err := s.db.GetContext(ctx, &id, `SELECT id FROM snapshot_meta ORDER BY loaded_at DESC LIMIT 1`); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: snapshot tables not seeded", domain.ErrSnapshotMissing)
			}
			return fmt.Errorf("load snapshot meta: %w", err)
		}

		var brands []brandRow
		if err := s.db.SelectContext(ctx, &brands, `SELECT name, color, position FROM brands ORDER BY position`); err != nil {
			return fmt.Errorf("load brands: %w", err)
		}
		raw.BrandColors = make(map[string]string, len(brands))
		for _, b := range brands {
			raw.Brands = append(raw.Brands, b.Name)
			raw.BrandColors[b.Name] = b.Color
		}

		var stats []brandStatsRow
		query := `SELECT brand, total_stores, dong_count, avg_monthly_sales,
		                 min_monthly_sales, max_monthly_sales
		          FROM brand_stats`
		if err := s.db.SelectContext(ctx, &stats, query); err != nil {
			return fmt.Errorf("load brand stats: %w", err)
		}
		raw.BrandStats = make(map[string]domain.BrandSummary, len(stats))
		for _, row := range stats {
			raw.BrandStats[row.Brand] = row.BrandSummary
		}

		var dongs []dongRow
		query = `SELECT dong_code, dong_name, monthly_sales, total_workers,
		                female_workers, cafe_count, age_10, age_20, age_30,
		                age_40, age_50, age_60, real_estate_cost,
		                closed_store_count
		         FROM dong_stats ORDER BY dong_code`
		if err := s.db.SelectContext(ctx, &dongs, query); err != nil {
			return fmt.Errorf("load dong stats: %w", err)
		}

		var counts []brandCountRow
		if err := s.db.SelectContext(ctx, &counts, `SELECT dong_code, brand, store_count FROM dong_brand_counts`); err != nil {
			return fmt.Errorf("load brand counts: %w", err)
		}
		countsByDong := make(map[string]map[string]int)
		for _, c := range counts {
			if countsByDong[c.DongCode] == nil {
				countsByDong[c.DongCode] = make(map[string]int)
			}
			countsByDong[c.DongCode][c.Brand] = c.StoreCount
		}
		for i := range dongs {
			d := dongs[i].DongStats
			d.StoreCounts = countsByDong[d.Code]
			raw.DongData = append(raw.DongData, &d)
		}

		query = `SELECT brand, name, lat, lng, dong_code, dong_name FROM map_points`
		if err := s.db.SelectContext(ctx, &raw.MapPoints, query); err != nil {
			return fmt.Errorf("load map points: %w", err)
		}

		var details []detailRow
		query = `SELECT dong_name_norm, opportunity_score, penetration_rate,
		                peak_sales_ratio, weekday_sales_ratio, avg_op_days,
		                closure_rate, competition_intensity,
		                penetration_score, commercial_index
		         FROM dong_details`
		if err := s.db.SelectContext(ctx, &details, query); err != nil {
			return fmt.Errorf("load dong details: %w", err)
		}
		if len(details) > 0 {
			overlay = make(snapshot.Overlay, len(details))
			for _, row := range details {
				overlay[row.DongNameNorm] = row.DetailMetrics
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot.Build(&raw, overlay, id)
}

var _ snapshot.Source = (*Source)(nil)

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/seoulbrew/sitescope/internal/snapshot"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		id        TEXT PRIMARY KEY,
		loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS brands (
		name     TEXT PRIMARY KEY,
		color    TEXT NOT NULL,
		position INT  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS brand_stats (
		brand             TEXT PRIMARY KEY,
		total_stores      INT    NOT NULL,
		dong_count        INT    NOT NULL,
		avg_monthly_sales DOUBLE PRECISION NOT NULL,
		min_monthly_sales BIGINT NOT NULL,
		max_monthly_sales BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dong_stats (
		dong_code          TEXT PRIMARY KEY,
		dong_name          TEXT   NOT NULL,
		monthly_sales      BIGINT NOT NULL,
		total_workers      INT    NOT NULL,
		female_workers     INT    NOT NULL,
		cafe_count         INT    NOT NULL,
		age_10             BIGINT NOT NULL,
		age_20             BIGINT NOT NULL,
		age_30             BIGINT NOT NULL,
		age_40             BIGINT NOT NULL,
		age_50             BIGINT NOT NULL,
		age_60             BIGINT NOT NULL,
		real_estate_cost   DOUBLE PRECISION NOT NULL,
		closed_store_count INT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dong_brand_counts (
		dong_code   TEXT NOT NULL,
		brand       TEXT NOT NULL,
		store_count INT  NOT NULL,
		PRIMARY KEY (dong_code, brand)
	)`,
	`CREATE TABLE IF NOT EXISTS map_points (
		brand     TEXT NOT NULL,
		name      TEXT NOT NULL,
		lat       DOUBLE PRECISION NOT NULL,
		lng       DOUBLE PRECISION NOT NULL,
		dong_code TEXT NOT NULL,
		dong_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dong_details (
		dong_name_norm        TEXT PRIMARY KEY,
		opportunity_score     DOUBLE PRECISION NOT NULL,
		penetration_rate      DOUBLE PRECISION NOT NULL,
		peak_sales_ratio      DOUBLE PRECISION NOT NULL,
		weekday_sales_ratio   DOUBLE PRECISION NOT NULL,
		avg_op_days           DOUBLE PRECISION NOT NULL,
		closure_rate          DOUBLE PRECISION NOT NULL,
		competition_intensity DOUBLE PRECISION NOT NULL,
		penetration_score     INT NOT NULL,
		commercial_index      INT NOT NULL
	)`,
}

var truncateTables = []string{
	"snapshot_meta", "brands", "brand_stats", "dong_stats",
	"dong_brand_counts", "map_points", "dong_details",
}

func runLoad(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	dataBytes, err := os.ReadFile(c.String("data"))
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}
	var raw snapshot.RawSnapshot
	if err := json.Unmarshal(dataBytes, &raw); err != nil {
		return fmt.Errorf("decode data file: %w", err)
	}

	detailBytes, details, err := readDetails(c.String("detail"))
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, table := range truncateTables {
		if _, err := tx.Exec("TRUNCATE TABLE " + table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	for pos, name := range raw.Brands {
		_, err := tx.Exec(`INSERT INTO brands (name, color, position) VALUES ($1, $2, $3)`,
			name, raw.BrandColors[name], pos)
		if err != nil {
			return fmt.Errorf("insert brand %s: %w", name, err)
		}
	}

	for brand, stats := range raw.BrandStats {
		_, err := tx.Exec(`INSERT INTO brand_stats
			(brand, total_stores, dong_count, avg_monthly_sales, min_monthly_sales, max_monthly_sales)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			brand, stats.TotalStores, stats.DongCount,
			stats.AvgMonthlySales, stats.MinMonthlySales, stats.MaxMonthlySales)
		if err != nil {
			return fmt.Errorf("insert brand stats %s: %w", brand, err)
		}
	}

	for _, d := range raw.DongData {
		_, err := tx.Exec(`INSERT INTO dong_stats
			(dong_code, dong_name, monthly_sales, total_workers, female_workers,
			 cafe_count, age_10, age_20, age_30, age_40, age_50, age_60,
			 real_estate_cost, closed_store_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			d.Code, d.Name, d.MonthlySales, d.TotalWorkers, d.FemaleWorkers,
			d.CafeCount, d.Age10, d.Age20, d.Age30, d.Age40, d.Age50, d.Age60,
			d.RealEstateCost, d.ClosedStoreCount)
		if err != nil {
			return fmt.Errorf("insert dong %s: %w", d.Code, err)
		}
		for brand, count := range d.StoreCounts {
			_, err := tx.Exec(`INSERT INTO dong_brand_counts (dong_code, brand, store_count)
				VALUES ($1, $2, $3)`, d.Code, brand, count)
			if err != nil {
				return fmt.Errorf("insert brand count %s/%s: %w", d.Code, brand, err)
			}
		}
	}

	for _, p := range raw.MapPoints {
		_, err := tx.Exec(`INSERT INTO map_points (brand, name, lat, lng, dong_code, dong_name)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.Brand, p.Name, p.Lat, p.Lng, p.DongCode, p.DongName)
		if err != nil {
			return fmt.Errorf("insert map point %s: %w", p.Name, err)
		}
	}

	for name, m := range details {
		_, err := tx.Exec(`INSERT INTO dong_details
			(dong_name_norm, opportunity_score, penetration_rate, peak_sales_ratio,
			 weekday_sales_ratio, avg_op_days, closure_rate, competition_intensity,
			 penetration_score, commercial_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			snapshot.NormalizeDongName(name),
			m.OpportunityScore, m.PenetrationRate, m.PeakSalesRatio,
			m.WeekdaySalesRatio, m.AvgOpDays, m.ClosureRate,
			m.CompetitionIntensity, m.PenetrationScore, m.CommercialIndex)
		if err != nil {
			return fmt.Errorf("insert detail %s: %w", name, err)
		}
	}

	// The id fingerprints the exact source bytes, matching what the file
	// source would compute for the same inputs.
	id := snapshot.Fingerprint(dataBytes, detailBytes)
	if _, err := tx.Exec(`INSERT INTO snapshot_meta (id) VALUES ($1)`, id); err != nil {
		return fmt.Errorf("insert snapshot meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("seeded snapshot %s: %d dongs, %d brands, %d map points, %d details",
		id, len(raw.DongData), len(raw.Brands), len(raw.MapPoints), len(details))
	return nil
}

// readDetails reads the optional detail overlay file. A missing file is
// fine; a broken one is not.
func readDetails(path string) ([]byte, map[string]snapshot.DetailMetrics, error) {
	if path == "" {
		return nil, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("detail file %s not found, skipping dong details", path)
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read detail file: %w", err)
	}
	var details map[string]snapshot.DetailMetrics
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, nil, fmt.Errorf("decode detail file: %w", err)
	}
	return data, details, nil
}

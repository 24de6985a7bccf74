// Package store is the optional write-behind Postgres layer: normalized
// complex/article rows plus raw provider snapshots for auditing. It is
// never on the read path; every API response re-fetches upstream.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE TABLE IF NOT EXISTS complexes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			complex_no             TEXT NOT NULL,
			complex_name           TEXT NOT NULL,
			real_estate_type_code  TEXT,
			real_estate_type_name  TEXT,
			cortar_address         TEXT,
			total_household_count  INTEGER,
			use_approve_ymd        TEXT,
			created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_fetch_at          TIMESTAMPTZ
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_complexes_complex_no ON complexes(complex_no);`,
		`CREATE TABLE IF NOT EXISTS articles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			article_no            TEXT NOT NULL,
			complex_no            TEXT,
			trade_type_name       TEXT,
			real_estate_type_name TEXT,
			deal_or_warrant_prc   TEXT,
			rent_prc              TEXT,
			area_name             TEXT,
			area1                 NUMERIC,
			area2                 NUMERIC,
			floor_info            TEXT,
			direction             TEXT,
			extras                JSONB,
			created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_fetch_at         TIMESTAMPTZ
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_articles_article_no ON articles(article_no);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_complex ON articles(complex_no);`,
		`CREATE TABLE IF NOT EXISTS provider_raw_snapshots (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			provider       TEXT NOT NULL,
			endpoint       TEXT NOT NULL,
			external_id    TEXT,
			payload        JSONB NOT NULL,
			fetched_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			payload_sha256 TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_provider ON provider_raw_snapshots(provider, endpoint, fetched_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_external ON provider_raw_snapshots(provider, external_id);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

type ComplexInput struct {
	ComplexNo           string
	ComplexName         string
	RealEstateTypeCode  sql.NullString
	RealEstateTypeName  sql.NullString
	CortarAddress       sql.NullString
	TotalHouseholdCount sql.NullInt64
	UseApproveYmd       sql.NullString
	// Raw snapshot
	Endpoint    string
	PayloadJSON []byte
}

type ArticleInput struct {
	ArticleNo          string
	ComplexNo          sql.NullString
	TradeTypeName      sql.NullString
	RealEstateTypeName sql.NullString
	DealOrWarrantPrc   sql.NullString
	RentPrc            sql.NullString
	AreaName           sql.NullString
	Area1              sql.NullFloat64
	Area2              sql.NullFloat64
	FloorInfo          sql.NullString
	Direction          sql.NullString
	ExtrasJSON         []byte
	// Raw snapshot
	Endpoint    string
	PayloadJSON []byte
}

// WriteSnapshotAndUpsertComplex records the raw page payload and upserts
// the normalized row in one transaction.
func (s *Store) WriteSnapshotAndUpsertComplex(ctx context.Context, provider string, in ComplexInput) (string, error) {
	if s == nil || s.DB == nil {
		return "", errors.New("nil db")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO complexes (complex_no, complex_name, real_estate_type_code, real_estate_type_name, cortar_address, total_household_count, use_approve_ymd, last_fetch_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		ON CONFLICT (complex_no)
		DO UPDATE SET complex_name=EXCLUDED.complex_name, real_estate_type_code=EXCLUDED.real_estate_type_code, real_estate_type_name=EXCLUDED.real_estate_type_name, cortar_address=EXCLUDED.cortar_address, total_household_count=EXCLUDED.total_household_count, use_approve_ymd=EXCLUDED.use_approve_ymd, updated_at=now(), last_fetch_at=now()
		RETURNING id`,
		in.ComplexNo, in.ComplexName, in.RealEstateTypeCode, in.RealEstateTypeName, in.CortarAddress, in.TotalHouseholdCount, in.UseApproveYmd,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	if err = s.writeSnapshot(ctx, tx, provider, in.Endpoint, in.ComplexNo, in.PayloadJSON); err != nil {
		return "", err
	}
	err = tx.Commit()
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) WriteSnapshotAndUpsertArticle(ctx context.Context, provider string, in ArticleInput) (string, error) {
	if s == nil || s.DB == nil {
		return "", errors.New("nil db")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO articles (article_no, complex_no, trade_type_name, real_estate_type_name, deal_or_warrant_prc, rent_prc, area_name, area1, area2, floor_info, direction, extras, last_fetch_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, now())
		ON CONFLICT (article_no)
		DO UPDATE SET complex_no=EXCLUDED.complex_no, trade_type_name=EXCLUDED.trade_type_name, real_estate_type_name=EXCLUDED.real_estate_type_name, deal_or_warrant_prc=EXCLUDED.deal_or_warrant_prc, rent_prc=EXCLUDED.rent_prc, area_name=EXCLUDED.area_name, area1=EXCLUDED.area1, area2=EXCLUDED.area2, floor_info=EXCLUDED.floor_info, direction=EXCLUDED.direction, extras=EXCLUDED.extras, updated_at=now(), last_fetch_at=now()
		RETURNING id`,
		in.ArticleNo, in.ComplexNo, in.TradeTypeName, in.RealEstateTypeName, in.DealOrWarrantPrc, in.RentPrc, in.AreaName, in.Area1, in.Area2, in.FloorInfo, in.Direction, nullableJSON(in.ExtrasJSON),
	).Scan(&id)
	if err != nil {
		return "", err
	}

	if err = s.writeSnapshot(ctx, tx, provider, in.Endpoint, in.ArticleNo, in.PayloadJSON); err != nil {
		return "", err
	}
	err = tx.Commit()
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) writeSnapshot(ctx context.Context, tx *sql.Tx, provider, endpoint, externalID string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	sum := sha256.Sum256(payload)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO provider_raw_snapshots (provider, endpoint, external_id, payload, payload_sha256)
		VALUES ($1,$2,$3,$4,$5)`,
		provider, endpoint, externalID, string(payload), hex.EncodeToString(sum[:]))
	return err
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

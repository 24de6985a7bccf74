package hydrator

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/yourorg/land-api/internal/events"
	"github.com/yourorg/land-api/internal/store"
	"github.com/yourorg/land-api/naverland"
)

// Hydrator mirrors upstream results into Postgres as a write-behind; API
// responses never depend on it.
type Hydrator struct {
	Store *store.Store
	Pub   events.Publisher
}

func (h *Hydrator) Enabled() bool { return h != nil && h.Store != nil }

const provider = "naver.land"

func (h *Hydrator) WriteComplex(ctx context.Context, endpoint, keyword string, raw []byte, c naverland.Complex) error {
	if !h.Enabled() {
		return nil
	}
	in := store.ComplexInput{
		ComplexNo:           c.ComplexNo,
		ComplexName:         c.ComplexName,
		RealEstateTypeCode:  nullString(c.RealEstateTypeCode),
		RealEstateTypeName:  nullString(c.RealEstateTypeName),
		CortarAddress:       nullString(c.CortarAddress),
		TotalHouseholdCount: nullInt(int64(c.TotalHouseholdCount)),
		UseApproveYmd:       nullString(c.UseApproveYmd),
		Endpoint:            endpoint,
		PayloadJSON:         raw,
	}
	if _, err := h.Store.WriteSnapshotAndUpsertComplex(ctx, provider, in); err != nil {
		return err
	}
	if h.Pub != nil {
		h.Pub.PublishComplexUpdated(ctx, events.ComplexUpdated{ComplexNo: c.ComplexNo, Keyword: keyword})
	}
	return nil
}

func (h *Hydrator) WriteArticle(ctx context.Context, endpoint string, raw []byte, a naverland.Article) error {
	if !h.Enabled() {
		return nil
	}
	var extras []byte
	if len(a.Extra) > 0 {
		extras, _ = json.Marshal(a.Extra)
	}
	in := store.ArticleInput{
		ArticleNo:          a.ArticleNo,
		ComplexNo:          nullString(a.ComplexNo),
		TradeTypeName:      nullString(a.TradeTypeName),
		RealEstateTypeName: nullString(a.RealEstateTypeName),
		DealOrWarrantPrc:   nullString(a.DealOrWarrantPrc),
		RentPrc:            nullString(a.RentPrc),
		AreaName:           nullString(a.AreaName),
		Area1:              nullFloat(a.Area1),
		Area2:              nullFloat(a.Area2),
		FloorInfo:          nullString(a.FloorInfo),
		Direction:          nullString(a.Direction),
		ExtrasJSON:         extras,
		Endpoint:           endpoint,
		PayloadJSON:        raw,
	}
	_, err := h.Store.WriteSnapshotAndUpsertArticle(ctx, provider, in)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullFloat(v float64) sql.NullFloat64 {
	if v == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

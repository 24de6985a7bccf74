package httpapi

import (
	"context"
	"log"

	"github.com/yourorg/land-api/internal/hydrator"
	"github.com/yourorg/land-api/naverland"
)

// Write-behind mirroring of served results. Failures are logged, never
// surfaced: persistence must not affect a response that already succeeded
// against the upstream.

func persistComplexes(ctx context.Context, hydr *hydrator.Hydrator, endpoint, keyword string, raw []byte, complexes []naverland.Complex) {
	if !hydr.Enabled() || len(complexes) == 0 {
		return
	}
	for _, c := range complexes {
		if c.ComplexNo == "" {
			continue
		}
		if err := hydr.WriteComplex(ctx, endpoint, keyword, raw, c); err != nil {
			log.Printf("[WARN] persist complex %s: %v", c.ComplexNo, err)
		}
	}
}

func persistArticles(ctx context.Context, hydr *hydrator.Hydrator, endpoint string, raw []byte, articles []naverland.Article) {
	if !hydr.Enabled() || len(articles) == 0 {
		return
	}
	for _, a := range articles {
		if a.ArticleNo == "" {
			continue
		}
		if err := hydr.WriteArticle(ctx, endpoint, raw, a); err != nil {
			log.Printf("[WARN] persist article %s: %v", a.ArticleNo, err)
		}
	}
}

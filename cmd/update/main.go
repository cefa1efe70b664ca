// Command update crawls the provider across the full taxonomy and reconciles
// the result into the local symbol store.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"yfsymbols/internal/app/di"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/crawler/usecase"
	"yfsymbols/internal/platform/db"
)

func main() {
	prune := flag.Bool("prune", false, "remove stored symbols absent from this crawl")
	timeout := flag.Duration("timeout", 2*time.Hour, "overall crawl deadline")
	assetClass := flag.String("asset-class", "", "restrict the crawl to one asset class")
	category := flag.String("category", "", "restrict the crawl to one category")
	exchange := flag.String("exchange", "", "restrict the crawl to one exchange")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	gdb, err := db.Open(db.Path())
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	uc := di.NewUpdateUsecase(gdb, logger)
	report, err := uc.Run(ctx, usecase.UpdateOptions{
		Prune:      *prune,
		AssetClass: taxonomy.AssetClass(*assetClass),
		Category:   taxonomy.Category(*category),
		Exchange:   taxonomy.Exchange(*exchange),
	})
	if err != nil {
		log.Fatal("update failed:", err)
	}

	if len(report.Failed) > 0 {
		logger.Warn("some combinations failed", "failed", len(report.Failed))
	}
}

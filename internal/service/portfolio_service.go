// Package service implements the portfolio aggregator: fan-out over the
// requested wallets, per-family normalization dispatch, cross-wallet merge,
// and derived totals.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/client"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/config"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/metrics"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/normalize"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/numfmt"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/wallet"
)

// PortfolioService aggregates balances and activity across wallets into one
// consolidated view.
type PortfolioService interface {
	Aggregate(ctx context.Context, wallets []string, includeHistoricalPrices bool, tokenFilter string) (*entity.PortfolioResult, error)
}

type portfolioServiceImpl struct {
	source client.BalanceActivitySource
	cfg    *config.Config
	logger *zap.Logger
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(source client.BalanceActivitySource, cfg *config.Config, logger *zap.Logger) PortfolioService {
	return &portfolioServiceImpl{
		source: source,
		cfg:    cfg,
		logger: logger.Named("PortfolioService"),
	}
}

// walletSlice is one wallet's normalized contribution, produced inside the
// fan-out and merged sequentially afterwards.
type walletSlice struct {
	address    string
	tokens     []*entity.NormalizedToken
	activities []entity.NormalizedActivity
}

// Aggregate fetches, normalizes, and merges the portfolio for the given
// wallets. Per-wallet failures and unclassifiable addresses degrade to empty
// contributions; only a cancelled request surfaces as an error.
func (s *portfolioServiceImpl) Aggregate(ctx context.Context, wallets []string, includeHistoricalPrices bool, tokenFilter string) (*entity.PortfolioResult, error) {
	start := time.Now()
	defer func() {
		metrics.AggregateDuration.Observe(time.Since(start).Seconds())
	}()

	wallets = wallet.Dedupe(wallets)
	s.logger.Info("Aggregating portfolio",
		zap.Strings("wallets", wallets),
		zap.Bool("includeHistoricalPrices", includeHistoricalPrices))

	// Fan out per wallet; each contribution lands at the wallet's input
	// position so the merge below stays deterministic in input order.
	contributions := make([]walletSlice, len(wallets))
	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Portfolio.MaxConcurrentWallets)

	for i, address := range wallets {
		eg.Go(func() error {
			contributions[i] = s.fetchWallet(childCtx, address, includeHistoricalPrices)
			return nil
		})
	}
	// Goroutines report failures by degrading, never through the group.
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Single-threaded accumulation after the join point.
	merged := make(map[entity.TokenKey]*entity.NormalizedToken)
	order := make([]entity.TokenKey, 0)
	activities := make([]entity.NormalizedActivity, 0)

	for _, contribution := range contributions {
		for _, tok := range contribution.tokens {
			mergeToken(merged, &order, tok, contribution.address)
		}
		activities = append(activities, contribution.activities...)
	}

	tokens := lo.FilterMap(order, func(key entity.TokenKey, _ int) (entity.NormalizedToken, bool) {
		tok := merged[key]
		if !matchesTokenFilter(tok, tokenFilter) {
			return entity.NormalizedToken{}, false
		}
		finalizeToken(tok)
		return *tok, true
	})

	var totalValue, totalPnL float64
	for _, tok := range tokens {
		value := deref0(tok.ValueUSD)
		totalValue += value
		if tok.Change24h != nil {
			totalPnL += value * (*tok.Change24h / 100.0)
		}
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return deref0(tokens[i].ValueUSD) > deref0(tokens[j].ValueUSD)
	})
	// Raw block times are ISO-8601, so lexicographic order is time order.
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].BlockTime > activities[j].BlockTime
	})

	s.logger.Info("Portfolio aggregation complete",
		zap.Int("walletCount", len(wallets)),
		zap.Int("tokenCount", len(tokens)),
		zap.Int("activityCount", len(activities)))

	return &entity.PortfolioResult{
		Tokens:         tokens,
		Activities:     activities,
		TotalValueUSD:  totalValue,
		TotalPnL24hUSD: totalPnL,
	}, nil
}

// fetchWallet classifies one address and fetches+normalizes its balances and
// activity. Any failure degrades to an empty slice for that aspect.
func (s *portfolioServiceImpl) fetchWallet(ctx context.Context, address string, includeHistoricalPrices bool) walletSlice {
	contribution := walletSlice{address: address}

	switch wallet.Classify(address) {
	case wallet.FamilyEVM:
		// Balance and activity calls have no ordering dependency.
		eg, fetchCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			raws, err := s.source.EvmBalances(fetchCtx, address, includeHistoricalPrices)
			if err != nil {
				s.logger.Warn("EVM balances fetch failed, contributing empty set",
					zap.String("address", address), zap.Error(err))
				return nil
			}
			for _, raw := range raws {
				if tok := normalize.EvmBalance(raw); tok != nil {
					contribution.tokens = append(contribution.tokens, tok)
				}
			}
			return nil
		})
		eg.Go(func() error {
			raws, err := s.source.EvmActivity(fetchCtx, address, s.cfg.Portfolio.ActivityLimit)
			if err != nil {
				s.logger.Warn("EVM activity fetch failed, contributing empty set",
					zap.String("address", address), zap.Error(err))
				return nil
			}
			for _, raw := range raws {
				contribution.activities = append(contribution.activities, normalize.Activity(address, raw))
			}
			return nil
		})
		_ = eg.Wait()

	case wallet.FamilySVM:
		raws, err := s.source.SvmBalances(ctx, address)
		if err != nil {
			s.logger.Warn("SVM balances fetch failed, contributing empty set",
				zap.String("address", address), zap.Error(err))
			return contribution
		}
		for _, raw := range raws {
			if tok := normalize.SvmBalance(raw); tok != nil {
				contribution.tokens = append(contribution.tokens, tok)
			}
		}

	default:
		s.logger.Warn("Unclassifiable address, contributing empty set",
			zap.String("address", address))
	}

	return contribution
}

// mergeToken folds one wallet's token into the running map: the first
// occurrence seeds the entry, later ones sum amounts and USD values and union
// the contributing wallets.
func mergeToken(merged map[entity.TokenKey]*entity.NormalizedToken, order *[]entity.TokenKey, tok *entity.NormalizedToken, address string) {
	key := tok.Key()
	existing, ok := merged[key]
	if !ok {
		seeded := *tok
		seeded.SourceWallets = []string{address}
		merged[key] = &seeded
		*order = append(*order, key)
		return
	}

	// Unknown amounts count as zero once merging starts.
	amount := deref0(existing.AmountNumeric) + deref0(tok.AmountNumeric)
	value := deref0(existing.ValueUSD) + deref0(tok.ValueUSD)
	existing.AmountNumeric = &amount
	existing.ValueUSD = &value

	if !lo.Contains(existing.SourceWallets, address) {
		existing.SourceWallets = append(existing.SourceWallets, address)
	}
}

// matchesTokenFilter reports whether the token survives the optional
// case-insensitive substring filter over its identity and naming fields.
func matchesTokenFilter(tok *entity.NormalizedToken, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	for _, field := range []string{tok.ContractAddress, tok.Symbol, tok.Name} {
		if strings.Contains(strings.ToLower(field), filter) {
			return true
		}
	}
	return false
}

// finalizeToken recomputes the display fields that depend on merged numeric
// state.
func finalizeToken(tok *entity.NormalizedToken) {
	tok.AmountFormatted = numfmt.FormatShort(tok.AmountNumeric)
	tok.ValueUSDFormatted = numfmt.FormatUSD(tok.ValueUSD)
	tok.ChainLabel = normalize.ChainLabel(tok.Chain)
}

func deref0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

package restapi

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/numfmt"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/service"
)

const (
	tabTokens   = "tokens"
	tabActivity = "activity"

	fetchErrorMessage = "Failed to fetch wallet data. Please try again."

	// PnL magnitudes below this render as neutral.
	pnlNeutralEpsilon = 1e-9
)

// PortfolioResponse is the wire shape of the portfolio endpoint.
type PortfolioResponse struct {
	WalletAddresses      []string                    `json:"walletAddresses"`
	CurrentTab           string                      `json:"currentTab"`
	TotalWalletUSDValue  string                      `json:"totalWalletUSDValue"`
	TotalPnLUSD          float64                     `json:"totalPnLUSD"`
	TotalPnLUSDFormatted string                      `json:"totalPnLUSDFormatted"`
	TotalPnLClass        string                      `json:"totalPnLClass"`
	Tokens               []entity.NormalizedToken    `json:"tokens"`
	Activities           []entity.NormalizedActivity `json:"activities"`
	ErrorMessage         string                      `json:"errorMessage,omitempty"`
}

// PortfolioHandler serves portfolio aggregation requests.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *zap.Logger
}

func NewPortfolioHandler(ps service.PortfolioService, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		logger:           logger,
	}
}

// GetPortfolioHandler handles GET /api/v1/portfolio.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	ctx := c.Request.Context()

	wallets := splitWallets(c.Query("walletAddresses"))
	tab := normalizeTab(c.Query("tab"))
	tokenFilter := c.Query("tokenFilter")

	// The tokens tab is the only consumer of historical prices, so skip
	// requesting them when only activity is shown.
	includeHistorical := tab == tabTokens

	result, err := h.portfolioService.Aggregate(ctx, wallets, includeHistorical, tokenFilter)
	if err != nil {
		h.logger.Error("Portfolio aggregation failed", zap.Strings("wallets", wallets), zap.Error(err))
		c.JSON(http.StatusOK, PortfolioResponse{
			WalletAddresses:      wallets,
			CurrentTab:           tab,
			TotalWalletUSDValue:  formatUSD(0),
			TotalPnLUSDFormatted: formatSignedUSD(0),
			TotalPnLClass:        "pnl-neutral",
			Tokens:               []entity.NormalizedToken{},
			Activities:           []entity.NormalizedActivity{},
			ErrorMessage:         fetchErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, PortfolioResponse{
		WalletAddresses:      wallets,
		CurrentTab:           tab,
		TotalWalletUSDValue:  formatUSD(result.TotalValueUSD),
		TotalPnLUSD:          result.TotalPnL24hUSD,
		TotalPnLUSDFormatted: formatSignedUSD(result.TotalPnL24hUSD),
		TotalPnLClass:        pnlClass(result.TotalPnL24hUSD),
		Tokens:               result.Tokens,
		Activities:           result.Activities,
	})
}

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func splitWallets(raw string) []string {
	parts := strings.Split(raw, ",")
	wallets := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			wallets = append(wallets, trimmed)
		}
	}
	return wallets
}

func normalizeTab(tab string) string {
	if tab == tabActivity {
		return tabActivity
	}
	return tabTokens
}

func formatUSD(v float64) string {
	return *numfmt.FormatUSD(&v)
}

func formatSignedUSD(v float64) string {
	return *numfmt.FormatSignedUSD(&v)
}

func pnlClass(pnl float64) string {
	switch {
	case math.Abs(pnl) < pnlNeutralEpsilon:
		return "pnl-neutral"
	case pnl > 0:
		return "pnl-up"
	default:
		return "pnl-down"
	}
}

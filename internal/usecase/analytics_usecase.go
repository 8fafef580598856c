package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	repo "storefront/internal/repository"
)

const (
	defaultPeriodDays = 30
	maxPeriodDays     = 365
	topProductsLimit  = 5
)

type Insighter interface {
	SalesInsights(ctx context.Context, data any) string
}

type AnalyticsUsecase struct {
	orders   repo.OrderRepository
	insights Insighter
	clock    Clock
}

func NewAnalyticsUsecase(orders repo.OrderRepository, insights Insighter, clock Clock) *AnalyticsUsecase {
	return &AnalyticsUsecase{orders: orders, insights: insights, clock: clock}
}

type SalesMetrics struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	Period            string          `json:"period"`
}

type TopProduct struct {
	Title    string          `json:"title"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type OrderSummary struct {
	ID           int64           `json:"id"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName"`
	ItemCount    int             `json:"itemCount"`
}

type AnalyticsOutput struct {
	Metrics       SalesMetrics      `json:"metrics"`
	TopProducts   []TopProduct      `json:"topProducts"`
	TopCategories []CategoryRevenue `json:"topCategories"`
	AIInsights    string            `json:"aiInsights"`
	Orders        []OrderSummary    `json:"orders"`
}

// AIに渡す集計データ
type salesData struct {
	TotalSales        decimal.Decimal   `json:"totalSales"`
	TotalOrders       int               `json:"totalOrders"`
	AverageOrderValue decimal.Decimal   `json:"averageOrderValue"`
	TopProducts       []TopProduct      `json:"topProducts"`
	TopCategories     []CategoryRevenue `json:"topCategories"`
	Period            string            `json:"period"`
}

// periodは日数。0なら30日
func (u *AnalyticsUsecase) Sales(ctx context.Context, sellerID int64, period int) (AnalyticsOutput, error) {
	if sellerID <= 0 {
		return AnalyticsOutput{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}
	if period == 0 {
		period = defaultPeriodDays
	}
	if period < 1 || period > maxPeriodDays {
		return AnalyticsOutput{}, NewHTTPError(http.StatusBadRequest, "Period must be between 1 and 365")
	}

	since := u.clock.Now().AddDate(0, 0, -period)
	orders, err := u.orders.ListBySellerSince(ctx, sellerID, since)
	if err != nil {
		return AnalyticsOutput{}, internalError(err, "list orders")
	}

	totalSales := decimal.Zero
	summaries := make([]OrderSummary, 0, len(orders))

	//商品IDごとの売上（表示名は注文時点のもの）
	type productAgg struct {
		first int
		TopProduct
	}
	byProduct := map[int64]*productAgg{}
	byCategory := map[string]decimal.Decimal{}

	for _, o := range orders {
		totalSales = totalSales.Add(o.Total)
		summaries = append(summaries, OrderSummary{
			ID:           o.ID,
			Total:        o.Total,
			Status:       string(o.Status),
			CreatedAt:    o.CreatedAt,
			CustomerName: o.CustomerName,
			ItemCount:    len(o.Items),
		})

		for _, it := range o.Items {
			revenue := it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity))
			agg, ok := byProduct[it.ProductID]
			if !ok {
				agg = &productAgg{first: len(byProduct), TopProduct: TopProduct{Title: it.ProductNameSnapshot, Revenue: decimal.Zero}}
				byProduct[it.ProductID] = agg
			}
			agg.Quantity += it.Quantity
			agg.Revenue = agg.Revenue.Add(revenue)

			prev, ok := byCategory[it.CategorySnapshot]
			if !ok {
				prev = decimal.Zero
			}
			byCategory[it.CategorySnapshot] = prev.Add(revenue)
		}
	}

	aggs := make([]*productAgg, 0, len(byProduct))
	for _, a := range byProduct {
		aggs = append(aggs, a)
	}
	//売上が同じなら先に出た商品を優先
	sort.Slice(aggs, func(i, j int) bool {
		if c := aggs[i].Revenue.Cmp(aggs[j].Revenue); c != 0 {
			return c > 0
		}
		return aggs[i].first < aggs[j].first
	})
	top := make([]TopProduct, 0, topProductsLimit)
	for i := 0; i < len(aggs) && i < topProductsLimit; i++ {
		top = append(top, aggs[i].TopProduct)
	}

	cats := make([]CategoryRevenue, 0, len(byCategory))
	for name, rev := range byCategory {
		cats = append(cats, CategoryRevenue{Category: name, Revenue: rev})
	}
	sort.Slice(cats, func(i, j int) bool {
		if c := cats[i].Revenue.Cmp(cats[j].Revenue); c != 0 {
			return c > 0
		}
		return cats[i].Category < cats[j].Category
	})

	avg := decimal.Zero
	if len(orders) > 0 {
		avg = totalSales.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	metrics := SalesMetrics{
		TotalSales:        totalSales,
		TotalOrders:       len(orders),
		AverageOrderValue: avg,
		Period:            fmt.Sprintf("%d days", period),
	}

	insights := placeholderInsights
	if u.insights != nil {
		insights = u.insights.SalesInsights(ctx, salesData{
			TotalSales:        metrics.TotalSales,
			TotalOrders:       metrics.TotalOrders,
			AverageOrderValue: metrics.AverageOrderValue,
			TopProducts:       top,
			TopCategories:     cats,
			Period:            metrics.Period,
		})
	}

	return AnalyticsOutput{
		Metrics:       metrics,
		TopProducts:   top,
		TopCategories: cats,
		AIInsights:    insights,
		Orders:        summaries,
	}, nil
}

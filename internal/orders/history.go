// Package orders holds the order-history view over the caller's orders.
package orders

import (
	"net/url"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
	"github.com/acrsolucoedig-spec/cellparts/internal/money"
)

type SortBy string

const (
	SortByDate  SortBy = "date"
	SortByTotal SortBy = "total"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

type HistoryQuery struct {
	Status    model.OrderStatus
	Search    string
	SortBy    SortBy
	SortOrder SortOrder
}

type invalidQuery string

func (e invalidQuery) Error() string { return string(e) }

// ParseHistoryQuery reads status, search, sortBy and sortOrder. Defaults: date, desc.
func ParseHistoryQuery(q url.Values) (HistoryQuery, error) {
	hq := HistoryQuery{
		Status:    model.OrderStatus(q.Get("status")),
		Search:    strings.TrimSpace(q.Get("search")),
		SortBy:    SortBy(q.Get("sortBy")),
		SortOrder: SortOrder(strings.ToLower(q.Get("sortOrder"))),
	}
	if hq.Status == "all" {
		hq.Status = ""
	}
	if hq.Status != "" && !hq.Status.Valid() {
		return hq, invalidQuery("status inválido")
	}
	switch hq.SortBy {
	case "":
		hq.SortBy = SortByDate
	case SortByDate, SortByTotal:
	default:
		return hq, invalidQuery("sortBy deve ser date ou total")
	}
	switch hq.SortOrder {
	case "":
		hq.SortOrder = Desc
	case Asc, Desc:
	default:
		return hq, invalidQuery("sortOrder deve ser asc ou desc")
	}
	return hq, nil
}

// Filter returns a new slice; in is left untouched.
func Filter(in []model.Order, q HistoryQuery) []model.Order {
	search := strings.ToLower(q.Search)
	out := make([]model.Order, 0, len(in))
	for _, o := range in {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(o.ID), search) {
			continue
		}
		out = append(out, o)
	}

	slices.SortStableFunc(out, func(a, b model.Order) int {
		var c int
		if q.SortBy == SortByTotal {
			c = a.Total.Cmp(b.Total)
		} else {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if q.SortOrder == Asc {
			return c
		}
		return -c
	})
	return out
}

type Summary struct {
	TotalOrders      int             `json:"totalOrders"`
	DeliveredOrders  int             `json:"deliveredOrders"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	AverageTicket    decimal.Decimal `json:"averageTicket"`
	TotalSpentBRL    string          `json:"totalSpentFormatted"`
	AverageTicketBRL string          `json:"averageTicketFormatted"`
}

func Summarize(in []model.Order) Summary {
	s := Summary{TotalSpent: decimal.Zero, AverageTicket: decimal.Zero}
	for _, o := range in {
		s.TotalOrders++
		if o.Status == model.OrderStatusDelivered {
			s.DeliveredOrders++
		}
		s.TotalSpent = s.TotalSpent.Add(o.Total)
	}
	if s.TotalOrders > 0 {
		s.AverageTicket = s.TotalSpent.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
	}
	s.TotalSpentBRL = money.FormatBRL(s.TotalSpent)
	s.AverageTicketBRL = money.FormatBRL(s.AverageTicket)
	return s
}

type History struct {
	Orders  []model.Order `json:"orders"`
	Summary Summary       `json:"summary"`
}

// BuildHistory filters the orders and summarizes the full, unfiltered list.
func BuildHistory(all []model.Order, q HistoryQuery) History {
	return History{Orders: Filter(all, q), Summary: Summarize(all)}
}

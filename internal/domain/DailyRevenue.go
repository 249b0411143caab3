package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue é a receita total de um dia. SaleDate é chave única na série.
type DailyRevenue struct {
	SaleDate     time.Time       `json:"sale_date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// FindDailyRevenue procura a linha de uma data na série
func FindDailyRevenue(series []DailyRevenue, date time.Time) (DailyRevenue, bool) {
	for _, row := range series {
		if SameDate(row.SaleDate, date) {
			return row, true
		}
	}
	return DailyRevenue{}, false
}

// SameDate compara apenas ano, mês e dia
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

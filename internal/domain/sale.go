package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineItem representa uma linha de pedido já resolvida com o preço do produto
type SaleLineItem struct {
	SaleDate  time.Time
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int64
	OrderID   int64
}

// Revenue retorna preço unitário x quantidade, sem arredondamento
func (s SaleLineItem) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
}

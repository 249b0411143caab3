package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartSpec descreve o gráfico de linha da receita diária a ser renderizado
type ChartSpec struct {
	Title        string
	XLabel       string
	YLabel       string
	Series       []DailyRevenue
	WidthInches  float64
	HeightInches float64
	DPI          int
	Annotation   *ChartAnnotation
}

// ChartAnnotation é a chamada com seta apontando para o valor da data alvo
type ChartAnnotation struct {
	Date       time.Time
	Value      decimal.Decimal
	Label      string
	OffsetDays int
}

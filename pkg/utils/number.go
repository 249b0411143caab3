package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formata um valor monetário com duas casas decimais (ex: $1234.50).
// Arredondamento só acontece aqui, na apresentação.
func FormatUSD(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}

// FormatUSDGrouped formata com separador de milhar (ex: $12,345), usado nos eixos do gráfico
func FormatUSDGrouped(value decimal.Decimal, places int32) string {
	text := value.StringFixed(places)

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(text, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	if hasFrac {
		return sign + "$" + sb.String() + "." + fracPart
	}
	return sign + "$" + sb.String()
}

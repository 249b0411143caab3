package artifact

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

var validate = validator.New()

// Schema descreve um artefato tabular: nome e colunas na ordem do cabeçalho
type Schema struct {
	Name    string
	Columns []string
}

var (
	SaleLineItemsSchema = Schema{
		Name:    "sale_line_items",
		Columns: []string{"sale_date", "product_id", "unit_price", "quantity", "order_id"},
	}

	DailyRevenueSchema = Schema{
		Name:    "daily_revenue",
		Columns: []string{"sale_date", "total_revenue"},
	}
)

// ValidateHeader confere se o cabeçalho lido bate exatamente com o schema
func (s Schema) ValidateHeader(header []string) error {
	if len(header) != len(s.Columns) {
		return malformed(s.Name, "cabeçalho com %d colunas, esperado %d (%s)",
			len(header), len(s.Columns), strings.Join(s.Columns, ","))
	}

	for i, column := range s.Columns {
		if strings.TrimSpace(header[i]) != column {
			return malformed(s.Name, "coluna %d é %q, esperado %q", i+1, header[i], column)
		}
	}

	return nil
}

// saleLineItemRecord é a linha crua do artefato de itens, antes da conversão
type saleLineItemRecord struct {
	SaleDate  string `validate:"required,datetime=2006-01-02"`
	ProductID string `validate:"required,number"`
	UnitPrice string `validate:"required,numeric"`
	Quantity  string `validate:"required,number"`
	OrderID   string `validate:"required,number"`
}

// dailyRevenueRecord é a linha crua da série diária
type dailyRevenueRecord struct {
	SaleDate     string `validate:"required,datetime=2006-01-02"`
	TotalRevenue string `validate:"required,numeric"`
}

func validateRecord(schema Schema, line int, record interface{}) error {
	if err := validate.Struct(record); err != nil {
		var fieldErrors validator.ValidationErrors
		if pkgerrors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return malformed(schema.Name, "linha %d: campo %s inválido (%s)", line, fe.Field(), fe.Tag())
		}
		return malformed(schema.Name, "linha %d: %v", line, err)
	}
	return nil
}

func malformed(name string, format string, args ...interface{}) error {
	return pkgerrors.Wrap(domain.ErrMalformedArtifact, fmt.Sprintf("%s: %s", name, fmt.Sprintf(format, args...)))
}

// Package repository contém o acesso à fonte relacional de pedidos
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

const (
	ordersTable = "orders o"
)

//go:generate mockgen -source=sale_line_item.go -destination=mocks/mock_sale_line_item.go -package=mocks

// SaleLineItemRepository lê as linhas de pedido já com o preço do produto.
// A conexão pertence a uma única invocação e deve ser fechada com Close.
type SaleLineItemRepository interface {
	ListSaleLineItems(ctx context.Context) ([]domain.SaleLineItem, error)
	Close() error
}

// SourceConnector abre uma conexão nova com a fonte a cada invocação
type SourceConnector interface {
	Connect(ctx context.Context) (SaleLineItemRepository, error)
}

type postgresSourceConnector struct {
	cfg config.Database
}

func NewSourceConnector(cfg config.Database) SourceConnector {
	return &postgresSourceConnector{
		cfg: cfg,
	}
}

func (c *postgresSourceConnector) Connect(ctx context.Context) (SaleLineItemRepository, error) {
	conn, err := postgres.NewConnection(ctx, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	return NewSaleLineItemRepository(conn), nil
}

type saleLineItemRepository struct {
	conn postgres.Conn
}

func NewSaleLineItemRepository(conn postgres.Conn) SaleLineItemRepository {
	return &saleLineItemRepository{
		conn: conn,
	}
}

// BuildSaleLineItemsQuery monta o join orders x order_details x products.
// Itens cujo produto não tem preço resolvível ficam de fora pelo próprio INNER JOIN.
func BuildSaleLineItemsQuery() (string, []interface{}, error) {
	return squirrel.
		Select(
			"o.orderdate::date AS sale_date",
			"od.productid",
			"p.price",
			"od.quantity",
			"od.orderid",
		).
		From(ordersTable).
		Join("order_details od ON o.orderid = od.orderid").
		Join("products p ON od.productid = p.productid").
		OrderBy("sale_date ASC", "od.orderid ASC", "od.productid ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *saleLineItemRepository) ListSaleLineItems(ctx context.Context) ([]domain.SaleLineItem, error) {
	query, args, err := BuildSaleLineItemsQuery()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	items := make([]domain.SaleLineItem, 0)
	for rows.Next() {
		item, err := scanSaleLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de pedido: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func (r *saleLineItemRepository) Close() error {
	return r.conn.Close()
}

func scanSaleLineItem(row postgres.Scanner) (domain.SaleLineItem, error) {
	var item domain.SaleLineItem

	err := row.Scan(
		&item.SaleDate,
		&item.ProductID,
		&item.UnitPrice,
		&item.Quantity,
		&item.OrderID,
	)
	if err != nil {
		return domain.SaleLineItem{}, err
	}

	return item, nil
}

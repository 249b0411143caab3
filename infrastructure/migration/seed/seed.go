// Package seed cria e popula as tabelas de pedidos usadas em desenvolvimento local
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/infrastructure/database/postgres"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		orderid   INTEGER PRIMARY KEY,
		orderdate TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		productid   INTEGER PRIMARY KEY,
		productname TEXT NOT NULL,
		price       NUMERIC(10, 2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_details (
		orderid   INTEGER NOT NULL,
		productid INTEGER NOT NULL,
		quantity  INTEGER NOT NULL CHECK (quantity >= 0)
	)`,
}

type Order struct {
	OrderID   int64
	OrderDate time.Time
}

type Product struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
}

type OrderDetail struct {
	OrderID   int64
	ProductID int64
	Quantity  int64
}

// Dataset é o conteúdo inserido pelo seed
type Dataset struct {
	Orders       []Order
	Products     []Product
	OrderDetails []OrderDetail
}

// Summary resume o que foi efetivamente inserido
type Summary struct {
	Orders       int64
	Products     int64
	OrderDetails int64
}

type statement struct {
	table string
	query string
	args  []interface{}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultDataset tem poucos pedidos ao redor de 1996-08-08. O produto 99 não
// existe em products e é descartado pelo join da extração.
func DefaultDataset() Dataset {
	return Dataset{
		Orders: []Order{
			{OrderID: 10248, OrderDate: day(1996, 7, 4)},
			{OrderID: 10249, OrderDate: day(1996, 7, 5)},
			{OrderID: 10250, OrderDate: day(1996, 8, 8)},
			{OrderID: 10251, OrderDate: day(1996, 8, 8).Add(15 * time.Hour)},
			{OrderID: 10252, OrderDate: day(1996, 8, 9)},
		},
		Products: []Product{
			{ProductID: 11, Name: "Queso Cabrales", Price: decimal.RequireFromString("14.00")},
			{ProductID: 42, Name: "Singaporean Hokkien Fried Mee", Price: decimal.RequireFromString("9.80")},
			{ProductID: 72, Name: "Mozzarella di Giovanni", Price: decimal.RequireFromString("34.80")},
			{ProductID: 14, Name: "Tofu", Price: decimal.RequireFromString("18.60")},
			{ProductID: 51, Name: "Manjimup Dried Apples", Price: decimal.RequireFromString("42.40")},
		},
		OrderDetails: []OrderDetail{
			{OrderID: 10248, ProductID: 11, Quantity: 12},
			{OrderID: 10248, ProductID: 42, Quantity: 10},
			{OrderID: 10249, ProductID: 14, Quantity: 9},
			{OrderID: 10249, ProductID: 51, Quantity: 40},
			{OrderID: 10250, ProductID: 72, Quantity: 5},
			{OrderID: 10250, ProductID: 42, Quantity: 1},
			{OrderID: 10251, ProductID: 11, Quantity: 2},
			{OrderID: 10251, ProductID: 99, Quantity: 3},
			{OrderID: 10252, ProductID: 51, Quantity: 1},
		},
	}
}

// BuildStatements monta os INSERTs do dataset. orders e products ignoram chaves já existentes.
func BuildStatements(data Dataset) ([]statement, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	statements := make([]statement, 0, 3)

	if len(data.Orders) > 0 {
		insert := psql.Insert("orders").Columns("orderid", "orderdate").Suffix("ON CONFLICT (orderid) DO NOTHING")
		for _, o := range data.Orders {
			insert = insert.Values(o.OrderID, o.OrderDate)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("seed: orders: %w", err)
		}
		statements = append(statements, statement{table: "orders", query: query, args: args})
	}

	if len(data.Products) > 0 {
		insert := psql.Insert("products").Columns("productid", "productname", "price").Suffix("ON CONFLICT (productid) DO NOTHING")
		for _, p := range data.Products {
			insert = insert.Values(p.ProductID, p.Name, p.Price.StringFixed(2))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("seed: products: %w", err)
		}
		statements = append(statements, statement{table: "products", query: query, args: args})
	}

	if len(data.OrderDetails) > 0 {
		insert := psql.Insert("order_details").Columns("orderid", "productid", "quantity")
		for _, d := range data.OrderDetails {
			if d.Quantity < 0 {
				return nil, fmt.Errorf("seed: quantidade negativa no pedido %d", d.OrderID)
			}
			insert = insert.Values(d.OrderID, d.ProductID, d.Quantity)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("seed: order_details: %w", err)
		}
		statements = append(statements, statement{table: "order_details", query: query, args: args})
	}

	return statements, nil
}

// Run cria as tabelas e insere o dataset numa única transação. Com reset, os
// itens de pedido existentes são apagados antes para o seed ser repetível.
func Run(ctx context.Context, conn postgres.Conn, data Dataset, reset bool) (Summary, error) {
	startTime := time.Now()
	var summary Summary

	statements, err := BuildStatements(data)
	if err != nil {
		return summary, err
	}

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, ddl := range schemaStatements {
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return fmt.Errorf("seed: criar tabelas: %w", err)
			}
		}

		if reset {
			if _, err := tx.ExecContext(ctx, "TRUNCATE order_details"); err != nil {
				return fmt.Errorf("seed: limpar order_details: %w", err)
			}
		}

		for _, st := range statements {
			result, err := tx.ExecContext(ctx, st.query, st.args...)
			if err != nil {
				return fmt.Errorf("seed: inserir %s: %w", st.table, err)
			}

			affected, _ := result.RowsAffected()
			switch st.table {
			case "orders":
				summary.Orders = affected
			case "products":
				summary.Products = affected
			case "order_details":
				summary.OrderDetails = affected
			}
		}

		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logrus.WithFields(logrus.Fields{
		"orders":        summary.Orders,
		"products":      summary.Products,
		"order_details": summary.OrderDetails,
		"duration":      time.Since(startTime).String(),
	}).Info("Seed da base de pedidos concluído")

	return summary, nil
}

package artifact

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

// ChartKind identifica as duas variantes de gráfico
type ChartKind string

const (
	ChartBase      ChartKind = "base"
	ChartAnnotated ChartKind = "annotated"
)

// Repository é o contrato tipado de troca de dados entre as etapas
type Repository interface {
	SaveSaleLineItems(ctx context.Context, items []domain.SaleLineItem) error
	LoadSaleLineItems(ctx context.Context) ([]domain.SaleLineItem, error)

	SaveDailyRevenue(ctx context.Context, series []domain.DailyRevenue) error
	LoadDailyRevenue(ctx context.Context) ([]domain.DailyRevenue, error)

	SavePointAnswer(ctx context.Context, answer domain.PointAnswer) error
	LoadPointAnswer(ctx context.Context) (decimal.Decimal, error)

	SaveChart(ctx context.Context, kind ChartKind, png []byte) error
	LoadChart(ctx context.Context, kind ChartKind) ([]byte, error)
	RemoveChart(ctx context.Context, kind ChartKind) error

	// Location retorna o caminho em disco do artefato, para mensagens ao usuário
	Location(name string) string
}

type fileRepository struct {
	store *FileStore
	cfg   config.Pipeline
}

func NewRepository(store *FileStore, cfg config.Pipeline) Repository {
	return &fileRepository{
		store: store,
		cfg:   cfg,
	}
}

// NewRepositoryFromConfig cria o FileStore no diretório de saída configurado
func NewRepositoryFromConfig(cfg config.Pipeline) (Repository, error) {
	store, err := NewFileStore(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return NewRepository(store, cfg), nil
}

func (r *fileRepository) Location(name string) string {
	return r.store.Path(name)
}

func (r *fileRepository) SaveSaleLineItems(ctx context.Context, items []domain.SaleLineItem) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.SaleDate.Format(time.DateOnly),
			strconv.FormatInt(item.ProductID, 10),
			item.UnitPrice.String(),
			strconv.FormatInt(item.Quantity, 10),
			strconv.FormatInt(item.OrderID, 10),
		})
	}

	data, err := encodeCSV(SaleLineItemsSchema, rows)
	if err != nil {
		return err
	}

	return r.store.Write(ctx, r.cfg.SaleLineItemsFile, data)
}

func (r *fileRepository) LoadSaleLineItems(ctx context.Context) ([]domain.SaleLineItem, error) {
	data, err := r.store.Read(ctx, r.cfg.SaleLineItemsFile)
	if err != nil {
		return nil, err
	}

	rows, err := decodeCSV(SaleLineItemsSchema, data)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SaleLineItem, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // cabeçalho é a linha 1
		record := saleLineItemRecord{
			SaleDate:  row[0],
			ProductID: row[1],
			UnitPrice: row[2],
			Quantity:  row[3],
			OrderID:   row[4],
		}
		if err := validateRecord(SaleLineItemsSchema, line, record); err != nil {
			return nil, err
		}

		item, err := toSaleLineItem(record)
		if err != nil {
			return nil, malformed(SaleLineItemsSchema.Name, "linha %d: %v", line, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *fileRepository) SaveDailyRevenue(ctx context.Context, series []domain.DailyRevenue) error {
	rows := make([][]string, 0, len(series))
	for _, day := range series {
		rows = append(rows, []string{
			day.SaleDate.Format(time.DateOnly),
			day.TotalRevenue.String(),
		})
	}

	data, err := encodeCSV(DailyRevenueSchema, rows)
	if err != nil {
		return err
	}

	return r.store.Write(ctx, r.cfg.DailyRevenueFile, data)
}

func (r *fileRepository) LoadDailyRevenue(ctx context.Context) ([]domain.DailyRevenue, error) {
	data, err := r.store.Read(ctx, r.cfg.DailyRevenueFile)
	if err != nil {
		return nil, err
	}

	rows, err := decodeCSV(DailyRevenueSchema, data)
	if err != nil {
		return nil, err
	}

	series := make([]domain.DailyRevenue, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		record := dailyRevenueRecord{
			SaleDate:     row[0],
			TotalRevenue: row[1],
		}
		if err := validateRecord(DailyRevenueSchema, line, record); err != nil {
			return nil, err
		}

		saleDate, err := time.Parse(time.DateOnly, record.SaleDate)
		if err != nil {
			return nil, malformed(DailyRevenueSchema.Name, "linha %d: %v", line, err)
		}
		total, err := decimal.NewFromString(record.TotalRevenue)
		if err != nil || total.IsNegative() {
			return nil, malformed(DailyRevenueSchema.Name, "linha %d: receita inválida %q", line, record.TotalRevenue)
		}

		series = append(series, domain.DailyRevenue{
			SaleDate:     saleDate,
			TotalRevenue: total,
		})
	}

	return series, nil
}

func (r *fileRepository) SavePointAnswer(ctx context.Context, answer domain.PointAnswer) error {
	return r.store.Write(ctx, r.cfg.PointAnswerFile, []byte(answer.ArtifactText()))
}

func (r *fileRepository) LoadPointAnswer(ctx context.Context) (decimal.Decimal, error) {
	data, err := r.store.Read(ctx, r.cfg.PointAnswerFile)
	if err != nil {
		return decimal.Zero, err
	}

	text := strings.TrimSpace(string(data))
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, malformed("point_answer", "valor %q não é decimal", text)
	}
	if value.IsNegative() {
		return decimal.Zero, malformed("point_answer", "valor %q é negativo", text)
	}

	return value, nil
}

func (r *fileRepository) SaveChart(ctx context.Context, kind ChartKind, png []byte) error {
	return r.store.Write(ctx, r.chartFile(kind), png)
}

func (r *fileRepository) LoadChart(ctx context.Context, kind ChartKind) ([]byte, error) {
	return r.store.Read(ctx, r.chartFile(kind))
}

func (r *fileRepository) RemoveChart(ctx context.Context, kind ChartKind) error {
	return r.store.Remove(ctx, r.chartFile(kind))
}

func (r *fileRepository) chartFile(kind ChartKind) string {
	if kind == ChartAnnotated {
		return r.cfg.AnnotatedChartFile
	}
	return r.cfg.ChartFile
}

func toSaleLineItem(record saleLineItemRecord) (domain.SaleLineItem, error) {
	saleDate, err := time.Parse(time.DateOnly, record.SaleDate)
	if err != nil {
		return domain.SaleLineItem{}, err
	}
	productID, err := strconv.ParseInt(record.ProductID, 10, 64)
	if err != nil {
		return domain.SaleLineItem{}, err
	}
	unitPrice, err := decimal.NewFromString(record.UnitPrice)
	if err != nil {
		return domain.SaleLineItem{}, err
	}
	if unitPrice.IsNegative() {
		return domain.SaleLineItem{}, pkgerrors.Errorf("preço negativo %s", record.UnitPrice)
	}
	quantity, err := strconv.ParseInt(record.Quantity, 10, 64)
	if err != nil {
		return domain.SaleLineItem{}, err
	}
	orderID, err := strconv.ParseInt(record.OrderID, 10, 64)
	if err != nil {
		return domain.SaleLineItem{}, err
	}

	return domain.SaleLineItem{
		SaleDate:  saleDate,
		ProductID: productID,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		OrderID:   orderID,
	}, nil
}

func encodeCSV(schema Schema, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(schema.Columns); err != nil {
		return nil, pkgerrors.Wrapf(err, "artifact: encode %s header", schema.Name)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, pkgerrors.Wrapf(err, "artifact: encode %s", schema.Name)
	}

	return buf.Bytes(), nil
}

// decodeCSV valida o cabeçalho e devolve apenas as linhas de dados
func decodeCSV(schema Schema, data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(schema.Columns)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, malformed(schema.Name, "arquivo sem cabeçalho")
		}
		return nil, malformed(schema.Name, "cabeçalho ilegível: %v", err)
	}
	if err := schema.ValidateHeader(header); err != nil {
		return nil, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, malformed(schema.Name, "%v", err)
	}

	return rows, nil
}

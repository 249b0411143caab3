package seed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatements_DefaultDataset(t *testing.T) {
	statements, err := BuildStatements(DefaultDataset())
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Equal(t, "orders", statements[0].table)
	assert.Contains(t, statements[0].query, "INSERT INTO orders (orderid,orderdate) VALUES ($1,$2),")
	assert.Contains(t, statements[0].query, "ON CONFLICT (orderid) DO NOTHING")
	assert.Len(t, statements[0].args, 10)

	assert.Equal(t, "products", statements[1].table)
	assert.Contains(t, statements[1].args, "14.00")

	assert.Equal(t, "order_details", statements[2].table)
	assert.NotContains(t, statements[2].query, "ON CONFLICT")
	assert.Len(t, statements[2].args, 27)
}

func TestBuildStatements(t *testing.T) {
	tests := []struct {
		name     string
		data     Dataset
		wantErr  bool
		validate func(t *testing.T, statements []statement)
	}{
		{
			name: "Dataset vazio não gera INSERTs",
			data: Dataset{},
			validate: func(t *testing.T, statements []statement) {
				assert.Empty(t, statements)
			},
		},
		{
			name: "Só produtos",
			data: Dataset{Products: []Product{{ProductID: 1, Name: "Chai", Price: decimal.RequireFromString("18")}}},
			validate: func(t *testing.T, statements []statement) {
				require.Len(t, statements, 1)
				assert.Equal(t, []interface{}{int64(1), "Chai", "18.00"}, statements[0].args)
			},
		},
		{
			name:    "Quantidade negativa é rejeitada",
			data:    Dataset{OrderDetails: []OrderDetail{{OrderID: 1, ProductID: 1, Quantity: -1}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statements, err := BuildStatements(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, statements)
		})
	}
}

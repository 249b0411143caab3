package log

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		validate func(t *testing.T, id string)
	}{
		{
			name:     "UUID recebido é reaproveitado",
			incoming: "2f1c7f0e-6b8a-4a57-9d8e-3f1b2c4d5e6f",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "2f1c7f0e-6b8a-4a57-9d8e-3f1b2c4d5e6f", id)
			},
		},
		{
			name:     "Valor inválido gera novo UUID",
			incoming: "abc; DROP TABLE",
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
		{
			name: "Sem cabeçalho gera novo UUID",
			validate: func(t *testing.T, id string) {
				assert.NotEmpty(t, id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, id := WithCorrelationID(context.Background(), tt.incoming)
			tt.validate(t, id)
			assert.Equal(t, id, GetCorrelationID(ctx))
		})
	}
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Configure("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Configure("barulhento")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

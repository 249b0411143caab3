package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NoMatchSentinel é o conteúdo persistido quando a data alvo não possui vendas
const NoMatchSentinel = "0"

// PointAnswer é a resposta da consulta pontual de receita para a data alvo
type PointAnswer struct {
	TargetDate time.Time
	Value      decimal.Decimal
	Found      bool
}

// ArtifactText retorna o texto persistido: o valor decimal (sempre com parte
// fracionária, ex: 40.0) ou exatamente "0" quando não há linha para a data.
func (p PointAnswer) ArtifactText() string {
	if !p.Found {
		return NoMatchSentinel
	}

	text := p.Value.String()
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// AnswerResult é o que o emissor de resposta devolve. Computed=false indica que
// o artefato ainda não foi gerado (pipeline não executado), o que é diferente
// de uma receita igual a zero.
type AnswerResult struct {
	TargetDate time.Time       `json:"target_date"`
	Value      decimal.Decimal `json:"value"`
	Computed   bool            `json:"computed"`
}

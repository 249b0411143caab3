package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/config"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
)

const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

//go:generate mockgen -source=daily_revenue_pipeline.go -destination=mocks/mock_daily_revenue_pipeline.go -package=mocks

// PipelineRunner executa o grafo completo de tarefas
type PipelineRunner interface {
	Run(ctx context.Context, trigger string) (*domain.PipelineRun, error)
}

// DailyRevenueSyncConfig representa a configuração do agendador do pipeline de receita
type DailyRevenueSyncConfig struct {
	CronSchedule      string
	Retries           int
	RetryDelaySeconds int
	SyncEnabled       bool
}

// DailyRevenuePipelineService agenda o pipeline e garante no máximo uma execução por vez
type DailyRevenuePipelineService struct {
	scheduler           *gocron.Scheduler
	config              DailyRevenueSyncConfig
	targetDate          time.Time
	runner              PipelineRunner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             *domain.PipelineRun
	baseCtx             context.Context
}

// NewDailyRevenuePipelineService cria o serviço a partir da configuração global
func NewDailyRevenuePipelineService(runner PipelineRunner, appConfig *config.Config) *DailyRevenuePipelineService {
	syncConfig := DailyRevenueSyncConfig{
		CronSchedule:      appConfig.DailyRevenueSync.CronSchedule,
		Retries:           appConfig.DailyRevenueSync.Retries,
		RetryDelaySeconds: appConfig.DailyRevenueSync.RetryDelaySeconds,
		SyncEnabled:       appConfig.DailyRevenueSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"retries":             syncConfig.Retries,
		"retry_delay_seconds": syncConfig.RetryDelaySeconds,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do pipeline de receita diária carregada")

	return &DailyRevenuePipelineService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		targetDate: appConfig.Pipeline.TargetDate,
		runner:     runner,
		baseCtx:    context.Background(),
	}
}

// Start inicia o agendador. Sem catchup: execuções perdidas enquanto o processo
// estava parado não são recuperadas.
func (s *DailyRevenuePipelineService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Pipeline de receita diária desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do pipeline de receita diária")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(ctx, TriggerScheduled); err != nil {
			logrus.WithError(err).Error("Execução agendada do pipeline falhou")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pipeline de receita diária: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do pipeline de receita diária")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa o pipeline de forma síncrona. Retorna ErrRunInProgress quando
// outra execução ainda não terminou.
func (s *DailyRevenuePipelineService) RunOnce(ctx context.Context, trigger string) (*domain.PipelineRun, error) {
	if !s.tryAcquire() {
		logrus.WithField("trigger", trigger).Info("Pipeline de receita diária já em andamento, ignorando")
		return nil, domain.ErrRunInProgress
	}
	defer s.release()

	return s.execute(ctx, trigger)
}

// TriggerManualSync inicia uma execução em segundo plano. Retorna ErrRunInProgress
// se já houver uma execução em andamento.
func (s *DailyRevenuePipelineService) TriggerManualSync() error {
	if !s.tryAcquire() {
		logrus.Info("Pipeline de receita diária já em andamento, ignorando solicitação manual")
		return domain.ErrRunInProgress
	}

	logrus.Info("Iniciando execução manual do pipeline de receita diária")
	go func() {
		defer s.release()
		if _, err := s.execute(s.baseCtx, TriggerManual); err != nil {
			logrus.WithError(err).Error("Execução manual do pipeline falhou")
		}
	}()

	return nil
}

func (s *DailyRevenuePipelineService) execute(ctx context.Context, trigger string) (*domain.PipelineRun, error) {
	s.syncMutex.Lock()
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	run, err := s.runner.Run(ctx, trigger)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	if run != nil {
		s.lastRun = run
	}
	s.syncMutex.Unlock()

	return run, err
}

func (s *DailyRevenuePipelineService) tryAcquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

func (s *DailyRevenuePipelineService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

// IsRunning indica se há uma execução em andamento
func (s *DailyRevenuePipelineService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// LastRun retorna a última execução concluída, ou nil
func (s *DailyRevenuePipelineService) LastRun() *domain.PipelineRun {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastRun
}

// GetStatus retorna o status atual do agendador
func (s *DailyRevenuePipelineService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_retries":           s.config.Retries,
		"sync_retry_delay_s":     s.config.RetryDelaySeconds,
		"target_date":            s.targetDate.Format(time.DateOnly),
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run":               s.lastRun,
	}
}

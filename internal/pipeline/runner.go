package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// StageFunc executa uma etapa do pipeline
type StageFunc func(ctx context.Context) error

// Stages reúne as quatro etapas do grafo extract → aggregate → {report, answer}
type Stages struct {
	Extract   StageFunc
	Aggregate StageFunc
	Report    StageFunc
	Answer    StageFunc
}

// RetryPolicy define quantas novas tentativas cada tarefa recebe e o intervalo entre elas
type RetryPolicy struct {
	Retries int
	Delay   time.Duration
}

type Runner struct {
	stages Stages
	policy RetryPolicy
	now    func() time.Time
}

func NewRunner(stages Stages, policy RetryPolicy) *Runner {
	if policy.Retries < 0 {
		policy.Retries = 0
	}

	return &Runner{
		stages: stages,
		policy: policy,
		now:    time.Now,
	}
}

// Run executa o grafo completo. O registro da execução é sempre retornado, mesmo
// quando alguma tarefa falha; o erro é o da primeira tarefa que falhou.
func (r *Runner) Run(ctx context.Context, trigger string) (*domain.PipelineRun, error) {
	run := r.newRun(trigger)

	logger := logrus.WithFields(logrus.Fields{
		"run_id":  run.ID,
		"trigger": trigger,
	})
	logger.Info("Iniciando execução do pipeline de receita diária")

	err := r.runGraph(ctx, run, logger)

	finishedAt := r.now()
	run.FinishedAt = &finishedAt
	if err != nil {
		run.Status = domain.RunStatusFailed
		logger.WithError(err).WithField("duration", finishedAt.Sub(run.StartedAt).String()).
			Error("Execução do pipeline falhou")
		return run, err
	}

	run.Status = domain.RunStatusSuccess
	logger.WithField("duration", finishedAt.Sub(run.StartedAt).String()).
		Info("Execução do pipeline concluída")

	return run, nil
}

func (r *Runner) runGraph(ctx context.Context, run *domain.PipelineRun, logger *logrus.Entry) error {
	if err := r.runTask(ctx, run.Task(domain.StageExtract), r.stages.Extract, logger); err != nil {
		markUpstreamFailed(run, domain.StageAggregate, domain.StageReport, domain.StageAnswer)
		return err
	}

	if err := r.runTask(ctx, run.Task(domain.StageAggregate), r.stages.Aggregate, logger); err != nil {
		markUpstreamFailed(run, domain.StageReport, domain.StageAnswer)
		return err
	}

	// errgroup sem contexto derivado: a falha de um ramo não cancela o outro
	var g errgroup.Group
	var reportErr, answerErr error

	g.Go(func() error {
		reportErr = r.runTask(ctx, run.Task(domain.StageReport), r.stages.Report, logger)
		return reportErr
	})
	g.Go(func() error {
		answerErr = r.runTask(ctx, run.Task(domain.StageAnswer), r.stages.Answer, logger)
		return answerErr
	})

	if err := g.Wait(); err != nil {
		return errors.Join(reportErr, answerErr)
	}

	return nil
}

// runTask aplica a política de novas tentativas a uma tarefa
func (r *Runner) runTask(ctx context.Context, task *domain.TaskRun, fn StageFunc, logger *logrus.Entry) error {
	startedAt := r.now()
	task.StartedAt = &startedAt
	task.Status = domain.TaskStatusRunning

	taskLogger := logger.WithField("task", task.Name)

	var err error
	for attempt := 1; attempt <= r.policy.Retries+1; attempt++ {
		task.Attempts = attempt

		if fn == nil {
			err = domain.NewStageError(task.Name, domain.ErrUnknownStage, "etapa não configurada")
			break
		}

		err = fn(ctx)
		if err == nil {
			break
		}

		if attempt > r.policy.Retries {
			break
		}

		taskLogger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   r.policy.Delay.String(),
		}).Warn("Tarefa falhou, nova tentativa agendada")

		if waitErr := sleep(ctx, r.policy.Delay); waitErr != nil {
			err = fmt.Errorf("%w (retry interrompido: %v)", err, waitErr)
			break
		}
	}

	finishedAt := r.now()
	task.FinishedAt = &finishedAt

	if err != nil {
		task.Status = domain.TaskStatusFailed
		task.Error = err.Error()
		taskLogger.WithError(err).WithField("attempts", task.Attempts).Error("Tarefa falhou")
		return err
	}

	task.Status = domain.TaskStatusSuccess
	taskLogger.WithFields(logrus.Fields{
		"attempts": task.Attempts,
		"duration": finishedAt.Sub(startedAt).String(),
	}).Info("Tarefa concluída")

	return nil
}

// RunStage executa uma única etapa, uma vez, sem política de novas tentativas
func (r *Runner) RunStage(ctx context.Context, name string) error {
	fn, ok := r.stage(name)
	if !ok || fn == nil {
		return domain.NewStageError(name, domain.ErrUnknownStage, "")
	}

	return fn(ctx)
}

func (r *Runner) stage(name string) (StageFunc, bool) {
	switch name {
	case domain.StageExtract:
		return r.stages.Extract, true
	case domain.StageAggregate:
		return r.stages.Aggregate, true
	case domain.StageReport:
		return r.stages.Report, true
	case domain.StageAnswer:
		return r.stages.Answer, true
	default:
		return nil, false
	}
}

func (r *Runner) newRun(trigger string) *domain.PipelineRun {
	id, err := utils.GenerateID()
	if err != nil {
		id = fmt.Sprintf("run-%d", r.now().UnixNano())
	}

	return &domain.PipelineRun{
		ID:        id,
		Trigger:   trigger,
		Status:    domain.RunStatusRunning,
		StartedAt: r.now(),
		Tasks: []*domain.TaskRun{
			{Name: domain.StageExtract, Status: domain.TaskStatusPending},
			{Name: domain.StageAggregate, Status: domain.TaskStatusPending},
			{Name: domain.StageReport, Status: domain.TaskStatusPending},
			{Name: domain.StageAnswer, Status: domain.TaskStatusPending},
		},
	}
}

func markUpstreamFailed(run *domain.PipelineRun, names ...string) {
	for _, name := range names {
		if task := run.Task(name); task != nil {
			task.Status = domain.TaskStatusUpstreamFailed
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package domain

import "time"

// Nomes das etapas do grafo de tarefas
const (
	StageExtract   = "extract"
	StageAggregate = "aggregate"
	StageReport    = "report"
	StageAnswer    = "answer"
)

type TaskStatus string

const (
	TaskStatusPending        TaskStatus = "pending"
	TaskStatusRunning        TaskStatus = "running"
	TaskStatusSuccess        TaskStatus = "success"
	TaskStatusFailed         TaskStatus = "failed"
	TaskStatusUpstreamFailed TaskStatus = "upstream_failed"
)

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// TaskRun guarda o resultado de uma tarefa dentro de uma execução do pipeline
type TaskRun struct {
	Name       string     `json:"name"`
	Status     TaskStatus `json:"status"`
	Attempts   int        `json:"attempts"`
	Error      string     `json:"error,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// PipelineRun representa uma execução completa do grafo de tarefas
type PipelineRun struct {
	ID         string     `json:"id"`
	Trigger    string     `json:"trigger"`
	Status     RunStatus  `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Tasks      []*TaskRun `json:"tasks"`
}

// Task retorna a tarefa pelo nome ou nil
func (r *PipelineRun) Task(name string) *TaskRun {
	for _, t := range r.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

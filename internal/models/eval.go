package models

import (
	"time"

	"gorm.io/gorm"
)

// EvalDataset groups the samples one experiment runs against
type EvalDataset struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string `gorm:"type:varchar(255)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	TaskType    string `gorm:"type:varchar(50);default:'qa'" json:"task_type"` // 'qa', 'classification', 'generation'

	// Relationships
	Samples     []EvalSample     `gorm:"foreignKey:DatasetID" json:"samples,omitempty"`
	Experiments []EvalExperiment `gorm:"foreignKey:DatasetID" json:"experiments,omitempty"`
}

// EvalSample is one input/ideal pair inside a dataset
type EvalSample struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	DatasetID uint   `gorm:"index" json:"dataset_id"`
	Input     string `gorm:"type:text" json:"input"`
	Ideal     string `gorm:"type:text" json:"ideal"`
}

// ExperimentStatus represents the lifecycle of an evaluation run
type ExperimentStatus string

const (
	ExperimentStatusPending   ExperimentStatus = "pending"
	ExperimentStatusRunning   ExperimentStatus = "running"
	ExperimentStatusCompleted ExperimentStatus = "completed"
	ExperimentStatusFailed    ExperimentStatus = "failed"
)

// EvalExperiment is one evaluation run of a model against a dataset
type EvalExperiment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	DatasetID uint             `gorm:"index" json:"dataset_id"`
	Name      string           `gorm:"type:varchar(255)" json:"name"`
	ModelName string           `gorm:"type:varchar(255)" json:"model_name"`
	Status    ExperimentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PassRate  float64          `json:"pass_rate"` // 0..1, denormalized from results

	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`

	// Relationships
	Dataset EvalDataset  `json:"dataset,omitempty"`
	Results []EvalResult `gorm:"foreignKey:ExperimentID" json:"results,omitempty"`
}

// PassRatePercent is PassRate scaled for display.
func (e EvalExperiment) PassRatePercent() float64 {
	return e.PassRate * 100
}

// EvalResult is the scored model output for one sample in one experiment
type EvalResult struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	ExperimentID uint    `gorm:"index" json:"experiment_id"`
	SampleID     uint    `gorm:"index" json:"sample_id"`
	Output       string  `gorm:"type:text" json:"output"`
	Score        float64 `json:"score"`
	Passed       bool    `json:"passed"`

	// Relationships
	Sample EvalSample `json:"sample,omitempty"`
}

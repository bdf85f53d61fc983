package models

import "time"

// TaskStatus represents the progress of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pendiente"
	TaskStatusRunning   TaskStatus = "En ejecución"
	TaskStatusDone      TaskStatus = "Realizada"
	TaskStatusCancelled TaskStatus = "Cancelada"
)

// Valid reports whether s is one of the known task states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusRunning, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// Field limits enforced on write.
const (
	TaskNameMaxLen        = 100
	TaskDescriptionMaxLen = 500
)

// Task is a unit of work optionally owned by a User.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Description *string    `gorm:"column:descripcion;size:500" json:"descripcion"`
	CreatedAt   time.Time  `gorm:"column:fecha_creacion;autoCreateTime;not null" json:"fecha_creacion"`
	ModifiedAt  *time.Time `gorm:"column:fecha_modificacion" json:"fecha_modificacion"`
	Status      TaskStatus `gorm:"column:estado;size:20;not null;default:'Pendiente';check:estado IN ('Pendiente','En ejecución','Realizada','Cancelada')" json:"estado"`

	// UserID is the owner. Nil means the task is not assigned.
	UserID *uint `gorm:"column:usuario_id;index" json:"usuario_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName keeps the singular table name used by the existing deployments.
func (Task) TableName() string { return "tarea" }

// IsFinished returns true if no further work is expected on the task.
func (t *Task) IsFinished() bool {
	return t.Status == TaskStatusDone || t.Status == TaskStatusCancelled
}

package models

// UserStatus is the lifecycle state of a user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Activo"
	UserStatusInactive UserStatus = "Inactivo"
	UserStatusDeleted  UserStatus = "Eliminado"
)

// Valid reports whether s is one of the known user states.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusDeleted:
		return true
	}
	return false
}

// Field limits enforced on write.
const (
	UserNameMaxLen  = 50
	UserEmailMaxLen = 100
)

// User is a person managed by the service.
// Users are never removed from storage: deletion moves them to UserStatusDeleted
// and every read filters them out.
type User struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	Name    string     `gorm:"column:nombre;size:50;not null" json:"nombre"`
	Email   string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Status  UserStatus `gorm:"column:estado;size:20;not null;default:'Activo';check:estado IN ('Activo','Inactivo','Eliminado')" json:"estado"`
	Premium bool       `gorm:"not null;default:false" json:"premium"`

	Tasks []Task `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName keeps the singular table name used by the existing deployments.
func (User) TableName() string { return "usuario" }

// IsDeleted returns true once the user has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.Status == UserStatusDeleted
}

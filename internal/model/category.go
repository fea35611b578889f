package model

// CategoryStatus is the lifecycle state of a category. "deleted" rows stay
// in the table and are filtered at every query site.
type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "active"
	CategoryInactive CategoryStatus = "inactive"
	CategoryDeleted  CategoryStatus = "deleted"
)

// ValidCategoryStatus reports whether s is one of the allowed states.
func ValidCategoryStatus(s CategoryStatus) bool {
	switch s {
	case CategoryActive, CategoryInactive, CategoryDeleted:
		return true
	}
	return false
}

// Category groups inventory items by name. Name is unique
// case-insensitively among non-deleted rows (enforced in the service layer,
// the column itself is not uniquely indexed so deleted namesakes can exist).
type Category struct {
	BaseModel
	Name        string         `gorm:"type:varchar(120);not null;index" json:"name" validate:"required"`
	Description string         `gorm:"type:text" json:"description"`
	Status      CategoryStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
}

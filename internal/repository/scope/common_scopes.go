package scope

import "gorm.io/gorm"

// OrderBySortOrder is the display ordering shared by catalog and plan rows.
func OrderBySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// OrderBySortOrderThenName breaks sort_order ties alphabetically.
func OrderBySortOrderThenName(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("name ASC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

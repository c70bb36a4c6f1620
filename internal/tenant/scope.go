// Package tenant holds the gorm scopes that keep every query inside one company.
package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// EmployeeScope narrows Scope to the records of one employee.
func EmployeeScope(companyID, employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	}
}

package models

// All returns every persisted entity, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Salon{},
		&Worker{},
		&Service{},
		&Booking{},
		&SignupCode{},
		&Review{},
		&AuditLog{},
	}
}

package models

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&Sale{},
		&CheckoutIntent{},
		&AuditLog{},
	}
}

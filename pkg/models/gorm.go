package models

func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&User{},
		&StaffGroup{},
		&DocumentType{},
		&Document{},
		&DocumentVersion{},
		&ActivityLog{},
	}
}

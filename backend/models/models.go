package models

// All returns every entity for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tutorial{},
		&UserLike{},
		&Project{},
		&Resource{},
		&UserDownload{},
		&Roadmap{},
		&UserProgress{},
		&Challenge{},
		&UserPoints{},
		&Certificate{},
		&ChatMessage{},
		&UploadedFile{},
	}
}

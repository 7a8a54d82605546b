package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[string]UploadConfig{
	"profile_photo": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/jpg"},
		MaxSizeMB:        10,
		PathPrefix:       "avatars",
	},
	// Фото оборудования для каталога
	"equipment_image": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "image/jpg"},
		MaxSizeMB:        20,
		PathPrefix:       "equipment",
	},
	"equipment_thumbnail": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "image/jpg"},
		MaxSizeMB:        2,
		PathPrefix:       "equipment/thumbs",
	},
}

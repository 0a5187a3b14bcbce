package dbschema

import (
	"glow-server/internal/domain/image"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(GeneratedImage{})
}

// GeneratedImage represents the database schema for gallery entries.
type GeneratedImage struct {
	BaseModel
	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   uint   `gorm:"index:idx_generated_images_user_created;not null"`
	User     User   `gorm:"foreignKey:UserID"`
	Prompt   string `gorm:"type:text;not null"`
	Model    string `gorm:"type:varchar(100);not null"`
	Size     string `gorm:"type:varchar(20);not null"`
	URL      string `gorm:"type:varchar(2048);not null"`
}

// NewSchemaGeneratedImage converts a domain gallery entry into a schema instance.
func NewSchemaGeneratedImage(img *image.GeneratedImage) *GeneratedImage {
	if img == nil {
		return nil
	}

	return &GeneratedImage{
		BaseModel: BaseModel{
			ID:        img.ID,
			CreatedAt: img.CreatedAt,
		},
		PublicID: img.PublicID,
		UserID:   img.UserID,
		Prompt:   img.Prompt,
		Model:    img.Model,
		Size:     img.Size,
		URL:      img.URL,
	}
}

// EtoD converts a schema gallery entry back to the domain representation.
func (img *GeneratedImage) EtoD() *image.GeneratedImage {
	if img == nil {
		return nil
	}

	return &image.GeneratedImage{
		ID:        img.ID,
		PublicID:  img.PublicID,
		UserID:    img.UserID,
		Prompt:    img.Prompt,
		Model:     img.Model,
		Size:      img.Size,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}

package languages

import "time"

type Language struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"not null" json:"title"`
	Code  string `gorm:"type:varchar(10);not null;uniqueIndex:idx_languages_code" json:"code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string { return "languages" }

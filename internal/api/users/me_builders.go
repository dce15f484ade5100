package users

import (
	"gorm.io/gorm"

	"translation-manager/internal/domain/posts"
	"translation-manager/internal/domain/users"
)

func BuildUserDTO(u users.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func BuildAuthoringDTO(db *gorm.DB, userID uint) (AuthoringDTO, error) {
	out := AuthoringDTO{Translations: map[string]int64{}}

	if err := db.Model(&posts.Post{}).Where("user_id = ?", userID).Count(&out.Posts).Error; err != nil {
		return out, err
	}
	if err := db.Model(&posts.Post{}).Where("user_id = ? AND is_published = ?", userID, true).Count(&out.Published).Error; err != nil {
		return out, err
	}

	var rows []struct {
		Code  string
		Total int64
	}
	err := db.Table("posts_translations AS pt").
		Select("languages.code AS code, COUNT(*) AS total").
		Joins("JOIN posts ON posts.id = pt.post_id").
		Joins("JOIN languages ON languages.id = pt.language_id").
		Where("posts.user_id = ?", userID).
		Group("languages.code").
		Scan(&rows).Error
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		out.Translations[r.Code] = r.Total
	}

	return out, nil
}

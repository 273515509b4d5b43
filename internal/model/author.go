package model

type Author struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string  `json:"name" gorm:"type:text;not null;index"`
	Bio       *string `json:"bio" gorm:"type:text"`
	Birthdate Date    `json:"birthdate" gorm:"type:date;not null" swaggertype:"string" example:"1947-09-21"`
}

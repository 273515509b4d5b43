package model

type Book struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string  `json:"title" gorm:"type:text;not null;index"`
	Description   *string `json:"description" gorm:"type:text"`
	PublishedDate Date    `json:"published_date" gorm:"column:published_date;type:date;not null" swaggertype:"string" example:"1986-09-15"`
	AuthorID      int64   `json:"author_id" gorm:"not null;index"`

	// Author only exists so AutoMigrate emits the cascading foreign key.
	Author *Author `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

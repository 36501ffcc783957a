package model

type Post struct {
	UUIDBase
	AuthorID uint      `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Title    string    `gorm:"size:255" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Views    int       `gorm:"default:0" json:"views"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	UUIDBase
	PostID   string `gorm:"index;type:varchar(36);not null" json:"postId"`
	AuthorID uint   `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}

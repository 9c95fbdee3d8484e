package models

type Comment struct {
	BaseModel
	Content     string         `gorm:"size:300;not null"`
	ProjectID   string         `gorm:"type:varchar(36);index;not null"`
	Project     *Project       `gorm:"foreignKey:ProjectID"`
	CommenterID *string        `gorm:"type:varchar(36);index"`
	Commenter   *Member        `gorm:"foreignKey:CommenterID"`
	Replies     []CommentReply `gorm:"foreignKey:CommentID"`
}

// CommentReply - ответ на комментарий. Проект берется у родителя.
type CommentReply struct {
	BaseModel
	Content     string   `gorm:"size:300;not null"`
	CommentID   string   `gorm:"type:varchar(36);index;not null"`
	Comment     *Comment `gorm:"foreignKey:CommentID"`
	CommenterID *string  `gorm:"type:varchar(36);index"`
	Commenter   *Member  `gorm:"foreignKey:CommenterID"`
}

package models

import "time"

const DefaultLabelColor = "0xFFFFFFFF"

type Project struct {
	BaseModel
	Name        string     `gorm:"size:40;uniqueIndex;not null"`
	Description string     `gorm:"size:255"`
	LabelColor  string     `gorm:"size:10;not null;default:'0xFFFFFFFF'"`
	IsComplete  bool       `gorm:"default:false"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     time.Time  `gorm:"not null"`
	WorkspaceID string     `gorm:"type:varchar(36);index;not null"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID"`
	CreatedByID *string    `gorm:"type:varchar(36)"`
	Members     []Member   `gorm:"many2many:project_members;"`
}

func (p *Project) HasMember(memberID string) bool {
	return hasMember(p.Members, memberID)
}

func (p *Project) GetMembers() []Member {
	return p.Members
}

type Team struct {
	BaseModel
	Name        string   `gorm:"size:120;uniqueIndex;not null"`
	Description string   `gorm:"size:255"`
	TeamPic     string   `gorm:"size:255"`
	ProjectID   string   `gorm:"type:varchar(36);index;not null"`
	Project     *Project `gorm:"foreignKey:ProjectID"`
	CreatedByID *string  `gorm:"type:varchar(36)"`
	Members     []Member `gorm:"many2many:team_members;"`
}

func (t *Team) HasMember(memberID string) bool {
	return hasMember(t.Members, memberID)
}

func (t *Team) GetMembers() []Member {
	return t.Members
}

type Task struct {
	BaseModel
	Name        string    `gorm:"size:128;uniqueIndex;not null"`
	Description string    `gorm:"size:255"`
	LabelColor  string    `gorm:"size:10;not null;default:'0xFFFFFFFF'"`
	IsComplete  bool      `gorm:"default:false"`
	IsTeamTask  bool      `gorm:"default:false"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	ProjectID   string    `gorm:"type:varchar(36);index;not null"`
	Project     *Project  `gorm:"foreignKey:ProjectID"`
	TeamID      *string   `gorm:"type:varchar(36);index"`
	Team        *Team     `gorm:"foreignKey:TeamID"`
	CategoryID  *string   `gorm:"type:varchar(36);index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	CreatedByID *string   `gorm:"type:varchar(36)"`
	Members     []Member  `gorm:"many2many:task_members;"`
}

func (t *Task) HasMember(memberID string) bool {
	return hasMember(t.Members, memberID)
}

type Category struct {
	BaseModel
	Name           string `gorm:"size:50;uniqueIndex;not null"`
	Description    string `gorm:"size:255"`
	LabelColor     string `gorm:"size:10;not null;default:'0xFFFFFFFF'"`
	IsTeamCategory bool   `gorm:"default:false"`
}

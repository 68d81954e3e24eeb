package session

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Token     string    `gorm:"column:token;not null"`
	Matricule string    `gorm:"column:matricule;index;not null"`
	Username  string    `gorm:"column:username;not null"`
	Role      string    `gorm:"column:role;not null"`
	UserJSON  string    `gorm:"column:user_json"`
	Locale    string    `gorm:"column:locale"`
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

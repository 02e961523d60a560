package model

import "time"

// User is keyed by the birthday token itself; rows are created lazily on the
// first successful login and never deleted.
type User struct {
	Birthday    string `gorm:"primaryKey;size:32" json:"birthday"`
	DisplayName string `gorm:"size:32" json:"display_name"`
}

type Message struct {
	ID       string    `gorm:"primaryKey;size:32" json:"id"`
	Time     time.Time `gorm:"index" json:"time"`
	Birthday string    `gorm:"size:32;index" json:"birthday"`
	Text     string    `gorm:"type:text" json:"text"`
	FilePath string    `gorm:"size:128" json:"file_path"`
	Active   bool      `gorm:"default:true" json:"active"`
}

// Activity is append-only. Birthday may be a synthetic label such as
// "unknown-<token>" for failed logins.
type Activity struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Birthday   string    `gorm:"size:64;index" json:"birthday"`
	Page       string    `gorm:"size:64" json:"page"`
	AccessTime time.Time `json:"access_time"`
}

type Bottle struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Birthday  string    `gorm:"size:32;index" json:"birthday"`
	Text      string    `gorm:"type:text" json:"text"`
	FilePath  string    `gorm:"size:128" json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

// BottleView records one draw per viewer per calendar day. The unique index is
// what keeps two concurrent draws from both landing a row.
type BottleView struct {
	ID       string `gorm:"primaryKey;size:32" json:"id"`
	Birthday string `gorm:"size:32;uniqueIndex:uk_viewer_date" json:"birthday"`
	BottleID string `gorm:"size:32;index" json:"bottle_id"`
	ViewDate string `gorm:"size:10;uniqueIndex:uk_viewer_date" json:"view_date"`
}

const (
	KindGreeting = "greeting"
	KindPS       = "ps"
)

// ScheduledMessage windows are wall-clock "HH:MM", day-relative.
type ScheduledMessage struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:16;index" json:"kind"`
	Content   string    `gorm:"type:text" json:"content"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Visit struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:256" json:"user_agent"`
	Page      string    `gorm:"size:64" json:"page"`
	VisitTime time.Time `json:"visit_time"`
}

type Chronicle struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:128" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string             { return "users" }
func (Message) TableName() string          { return "messages" }
func (Activity) TableName() string         { return "user_activity" }
func (Bottle) TableName() string           { return "bottles" }
func (BottleView) TableName() string       { return "bottle_views" }
func (ScheduledMessage) TableName() string { return "scheduled_messages" }
func (Visit) TableName() string            { return "visits" }
func (Chronicle) TableName() string        { return "chronicles" }

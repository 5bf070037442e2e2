package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a custom type for PostgreSQL text[] that implements Scanner and Valuer.
// SQLite stores it as the same "{a,b,c}" literal, which keeps the gorm code portable.
type StringArray []string

// Scan implements the sql.Scanner interface for reading from database
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	str, ok := value.(string)
	if !ok {
		if bytes, ok := value.([]byte); ok {
			str = string(bytes)
		} else {
			*a = nil
			return nil
		}
	}

	str = strings.TrimPrefix(str, "{")
	str = strings.TrimSuffix(str, "}")

	if str == "" {
		*a = []string{}
		return nil
	}

	*a = strings.Split(str, ",")
	return nil
}

// Value implements the driver.Valuer interface for writing to database
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// Location is a flat lat/lng/address triple stored inline on the owning row
// but rendered as a nested object in API responses.
type Location struct {
	Latitude  float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude float64 `gorm:"column:longitude;not null" json:"longitude"`
	Address   string  `gorm:"column:address;type:text" json:"address"`
}

// Severity levels for waste reports
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Waste report status values. Transitions are monotonic:
// pending -> in_progress -> completed.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidSeverity reports whether s is a known severity level
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known report status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// User represents an EcoTrack account. Points only ever increase: +50 per
// waste report, plus a waste-type dependent award per verified cleanup.
type User struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"type:text;not null" json:"-"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	AvatarURL    *string `gorm:"column:avatar_url" json:"avatar,omitempty"`
	Points       int     `gorm:"default:0" json:"points"`

	JoinedDate time.Time `gorm:"autoCreateTime" json:"joinedDate"`
	UpdatedAt  time.Time `json:"-"`
}

// WasteReport describes an observed waste location awaiting cleanup
type WasteReport struct {
	ID       string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string   `gorm:"not null;index" json:"userId"`
	UserName string   `gorm:"not null" json:"userName"`
	Location Location `gorm:"embedded" json:"location"`

	WasteType   string      `gorm:"not null" json:"wasteType"`
	Severity    string      `gorm:"not null;index" json:"severity"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Images      StringArray `gorm:"type:text[]" json:"images"`
	Status      string      `gorm:"not null;default:pending;index" json:"status"`

	ContactName  string  `gorm:"not null" json:"contactName"`
	ContactPhone *string `json:"contactPhone"`

	ReportedAt  time.Time  `gorm:"autoCreateTime;index" json:"reportedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CleanupActivity is a feed entry: either a verified cleanup performed by a
// user, or an unverified zero-point stub derived from a waste report's
// photos. Likes and comments are denormalized counters; every mutating path
// keeps them in step with the activity_likes / activity_comments rows.
type CleanupActivity struct {
	ID            string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string   `gorm:"not null;index" json:"userId"`
	UserName      string   `gorm:"not null" json:"userName"`
	UserAvatar    *string  `gorm:"-:migration;->" json:"userAvatar,omitempty"`
	WasteReportID *string  `gorm:"type:uuid;index" json:"wasteReportId,omitempty"`
	WasteType     string   `gorm:"not null" json:"wasteType"`
	Location      Location `gorm:"embedded" json:"location"`
	Description   string   `gorm:"type:text" json:"description"`

	BeforeImage       *string `gorm:"type:text" json:"beforeImage"`
	AfterImage        *string `gorm:"type:text" json:"afterImage"`
	VerificationImage string  `gorm:"type:text;not null" json:"verificationImage"`

	Verified     bool `gorm:"default:false;index" json:"verified"`
	PointsEarned int  `gorm:"default:0" json:"pointsEarned"`
	Likes        int  `gorm:"default:0" json:"likes"`
	Comments     int  `gorm:"default:0" json:"comments"`

	CleanedAt time.Time `gorm:"autoCreateTime;index" json:"cleanedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityComment is a comment on a feed activity, shown oldest-first
type ActivityComment struct {
	ID         string  `gorm:"primaryKey;type:uuid" json:"id"`
	ActivityID string  `gorm:"type:uuid;not null;index" json:"activityId"`
	UserID     string  `gorm:"not null;index" json:"userId"`
	UserName   string  `gorm:"not null" json:"userName"`
	UserAvatar *string `gorm:"-:migration;->" json:"userAvatar,omitempty"`

	CommentText string `gorm:"type:text;not null" json:"commentText"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActivityLike records one user's like on one activity. The unique
// (user_id, activity_id) index is what makes the like endpoint a toggle.
type ActivityLike struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_activity_likes_user_activity" json:"userId"`
	ActivityID string    `gorm:"type:uuid;not null;uniqueIndex:idx_activity_likes_user_activity" json:"activityId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func generateUUID() string {
	return uuid.New().String()
}

// BeforeCreate hooks for GORM

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateUUID()
	}
	return nil
}

func (r *WasteReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = generateUUID()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}

func (a *CleanupActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = generateUUID()
	}
	if a.CleanedAt.IsZero() {
		a.CleanedAt = time.Now().UTC()
	}
	return nil
}

func (c *ActivityComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	return nil
}

func (l *ActivityLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = generateUUID()
	}
	return nil
}

// TableName overrides to match the original schema naming
func (ActivityComment) TableName() string {
	return "activity_comments"
}

func (ActivityLike) TableName() string {
	return "activity_likes"
}

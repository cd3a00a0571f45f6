package models

import (
	"time"

	"gorm.io/gorm"
)

type ReportStatus string

// The status domain is closed: reports are born pending and only move
// between these three values through moderation.
const (
	StatusPending  ReportStatus = "pending"
	StatusApproved ReportStatus = "approved"
	StatusDeclined ReportStatus = "declined"
)

// Valid reports whether s is one of the three canonical statuses.
func (s ReportStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusDeclined
}

// GraffitiReport is one citizen-submitted graffiti complaint.
// Location is a PostGIS geography point (WGS84); the check constraint
// mirrors the fallback-store validation so both backends agree.
type GraffitiReport struct {
	ReportID          int            `json:"report_id" gorm:"column:report_id;primaryKey"`
	UserID            *int64         `json:"telegram_user_id" gorm:"column:user_id"`
	User              *User          `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:SET NULL"`
	Location          *Point         `json:"-" gorm:"type:geography(Point,4326);index:idx_graffiti_reports_location,type:gist"`
	FiasID            *string        `json:"fias_id" gorm:"column:fias_id;type:uuid"`
	NormalizedAddress string         `json:"normalized_address" gorm:"type:text"`
	Status            ReportStatus   `json:"status" gorm:"size:20;not null;default:pending;check:check_status_values,status IN ('pending','approved','declined')"`
	Description       string         `json:"description" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	Photos            []ReportPhoto  `json:"-" gorm:"foreignKey:ReportID;references:ReportID;constraint:OnDelete:CASCADE"`
}

func (GraffitiReport) TableName() string {
	return "graffiti_reports"
}

// ReportCreate is the /api/apply request body. Coordinates arrive as
// strings (the web client and DaData both send them that way) and are
// only stored when both parse as floats.
type ReportCreate struct {
	TelegramUserID   *int64 `json:"telegram_user_id"`
	TelegramUsername string `json:"telegram_username"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	RawAddress       string `json:"raw_address"`
	FiasID           string `json:"fias_id"`
	Latitude         string `json:"latitude"`
	Longitude        string `json:"longitude"`
	Comment          string `json:"comment"`
}

// ModerateRequest is the /api/applications/moderate request body.
type ModerateRequest struct {
	ReportID      int    `json:"report_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
	AdminPassword string `json:"admin_password"`
}

// ReportView is one entry of the /api/applications response, a report
// enriched with its submitter profile and photo URLs.
type ReportView struct {
	ReportID         int          `json:"report_id"`
	TelegramUserID   *int64       `json:"telegram_user_id"`
	TelegramUsername string       `json:"telegram_username,omitempty"`
	FirstName        string       `json:"first_name,omitempty"`
	LastName         string       `json:"last_name,omitempty"`
	Location         string       `json:"location"`
	FiasID           string       `json:"fias_id,omitempty"`
	Latitude         *float64     `json:"latitude,omitempty"`
	Longitude        *float64     `json:"longitude,omitempty"`
	Status           ReportStatus `json:"status"`
	Comment          string       `json:"comment"`
	CreatedAt        time.Time    `json:"created_at"`
	Photos           []PhotoView  `json:"photos"`
}

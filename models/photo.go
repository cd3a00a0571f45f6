package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportPhoto is one photo attached to a report. S3Key is the object
// key in the content bucket; the binary itself never touches the
// database.
type ReportPhoto struct {
	PhotoID    int            `json:"photo_id" gorm:"column:photo_id;primaryKey"`
	ReportID   int            `json:"report_id" gorm:"column:report_id;not null;index"`
	S3Key      string         `json:"s3_key" gorm:"column:s3_key;size:255;not null"`
	UploadedAt time.Time      `json:"uploaded_at" gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ReportPhoto) TableName() string {
	return "report_photos"
}

// PhotoView is a photo resolved to a retrievable URL, either presigned
// or the stable download-by-id path when storage is unconfigured.
type PhotoView struct {
	PhotoID int    `json:"photo_id"`
	S3Key   string `json:"s3_key"`
	URL     string `json:"url"`
}

package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tau-lavender/graffity-report/apperrors"
	"github.com/tau-lavender/graffity-report/models"
)

// GormStore is the Postgres-backed ReportStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Apply runs the user upsert and the report insert inside one
// transaction: a failure after the user flush rolls back both rows.
func (s *GormStore) Apply(user *models.User, report *models.GraffitiReport) (int, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if user != nil {
			var existing models.User
			err := tx.First(&existing, "user_id = ?", user.UserID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(user).Error; err != nil {
					return fmt.Errorf("error creating user %d: %w", user.UserID, err)
				}
			} else if err != nil {
				return fmt.Errorf("error loading user %d: %w", user.UserID, err)
			}
			report.UserID = &user.UserID
		}

		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("error creating report: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return report.ReportID, nil
}

func (s *GormStore) List(userID *int64) ([]models.GraffitiReport, error) {
	query := s.db.
		Preload("User").
		Preload("Photos").
		Order("created_at DESC")

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var reports []models.GraffitiReport
	if err := query.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	return reports, nil
}

func (s *GormStore) Moderate(reportID int, status models.ReportStatus) error {
	result := s.db.Model(&models.GraffitiReport{}).
		Where("report_id = ?", reportID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("error moderating report %d: %w", reportID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

func (s *GormStore) AddPhoto(photo *models.ReportPhoto) (int, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.GraffitiReport
		if err := tx.First(&report, "report_id = ?", photo.ReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReportNotFound
			}
			return fmt.Errorf("error loading report %d: %w", photo.ReportID, err)
		}
		if err := tx.Create(photo).Error; err != nil {
			return fmt.Errorf("error creating photo: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return photo.PhotoID, nil
}

func (s *GormStore) PhotosByReport(reportID int) ([]models.ReportPhoto, error) {
	var photos []models.ReportPhoto
	err := s.db.
		Where("report_id = ?", reportID).
		Order("uploaded_at ASC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("error listing photos of report %d: %w", reportID, err)
	}
	return photos, nil
}

func (s *GormStore) PhotoByID(photoID int) (*models.ReportPhoto, error) {
	var photo models.ReportPhoto
	err := s.db.First(&photo, "photo_id = ?", photoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading photo %d: %w", photoID, err)
	}
	return &photo, nil
}

func (s *GormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Package store owns report persistence. Two implementations exist:
// the GORM-backed Postgres store and the in-memory fallback used when
// no database is configured. The report service talks to the
// ReportStore interface only; the backend is picked once at startup.
package store

import "github.com/tau-lavender/graffity-report/models"

// ReportStore is the persistence contract for users, reports and
// photo metadata.
type ReportStore interface {
	// Apply upserts the submitter (when non-nil) and inserts the
	// report in one unit of work, returning the new report id.
	Apply(user *models.User, report *models.GraffitiReport) (int, error)

	// List returns reports newest first, each with its submitter and
	// photos attached. A non-nil userID restricts to that submitter.
	// Soft-deleted rows are excluded.
	List(userID *int64) ([]models.GraffitiReport, error)

	// Moderate sets the status of one report. Returns
	// apperrors.ErrReportNotFound for an unknown id.
	Moderate(reportID int, status models.ReportStatus) error

	// AddPhoto inserts photo metadata, returning the photo id. The
	// referenced report must exist.
	AddPhoto(photo *models.ReportPhoto) (int, error)

	// PhotosByReport returns all photos of one report.
	PhotosByReport(reportID int) ([]models.ReportPhoto, error)

	// PhotoByID returns one photo by its id, or
	// apperrors.ErrPhotoNotFound.
	PhotoByID(photoID int) (*models.ReportPhoto, error)

	// Ping reports backend liveness for the health probe.
	Ping() error
}

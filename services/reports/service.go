// Package reports implements the report pipeline: intake with address
// normalization, listing, moderation and photo attachment. It is the
// only place business rules live; handlers stay thin and stores stay
// dumb.
package reports

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tau-lavender/graffity-report/apperrors"
	"github.com/tau-lavender/graffity-report/models"
	"github.com/tau-lavender/graffity-report/store"
	"github.com/tau-lavender/graffity-report/utils"
)

// presignTTL bounds how long photo links handed out by List and
// PhotoURL stay valid.
const presignTTL = time.Hour

// AddressNormalizer cleans a free-text address. Implementations never
// fail: on any problem they return the raw input as the normalized
// address.
type AddressNormalizer interface {
	Normalize(ctx context.Context, rawAddress string) utils.AddressResult
}

// ObjectStorage is the slice of the storage gateway the pipeline
// needs.
type ObjectStorage interface {
	Configured() bool
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, bool)
}

type Service struct {
	store       store.ReportStore
	normalizer  AddressNormalizer
	storage     ObjectStorage
	adminSecret string
}

func New(st store.ReportStore, normalizer AddressNormalizer, storage ObjectStorage, adminSecret string) *Service {
	return &Service{
		store:       st,
		normalizer:  normalizer,
		storage:     storage,
		adminSecret: adminSecret,
	}
}

// Apply validates the submission, upserts the submitter, resolves the
// address and creates a pending report, returning its id.
func (s *Service) Apply(ctx context.Context, req models.ReportCreate) (int, error) {
	if req.RawAddress == "" && req.FiasID == "" {
		return 0, fmt.Errorf("%w: an address is required", apperrors.ErrValidation)
	}

	var user *models.User
	if req.TelegramUserID != nil {
		user = &models.User{
			UserID:    *req.TelegramUserID,
			Username:  req.TelegramUsername,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
	}

	report := models.GraffitiReport{
		Status:      models.StatusPending,
		Description: req.Comment,
	}

	if req.FiasID != "" {
		// The client already normalized the address upstream (the web
		// app uses DaData suggestions); its values are used verbatim.
		report.FiasID = &req.FiasID
		report.NormalizedAddress = req.RawAddress
		report.Location = pointFrom(utils.ParseCoordinate(req.Latitude), utils.ParseCoordinate(req.Longitude))
	} else {
		res := s.normalizer.Normalize(ctx, req.RawAddress)
		report.NormalizedAddress = res.NormalizedAddress
		if res.FiasID != "" {
			fias := res.FiasID
			report.FiasID = &fias
		}
		report.Location = pointFrom(res.Latitude, res.Longitude)
	}

	return s.store.Apply(user, &report)
}

// List returns reports newest first, enriched with submitter fields,
// decoded coordinates and a retrievable URL per photo.
func (s *Service) List(ctx context.Context, userID *int64) ([]models.ReportView, error) {
	reports, err := s.store.List(userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ReportView, 0, len(reports))
	for _, r := range reports {
		view := models.ReportView{
			ReportID:  r.ReportID,
			Location:  r.NormalizedAddress,
			Status:    r.Status,
			Comment:   r.Description,
			CreatedAt: r.CreatedAt,
			Photos:    make([]models.PhotoView, 0, len(r.Photos)),
		}
		view.TelegramUserID = r.UserID
		if r.User != nil {
			view.TelegramUsername = r.User.Username
			view.FirstName = r.User.FirstName
			view.LastName = r.User.LastName
		}
		if r.FiasID != nil {
			view.FiasID = *r.FiasID
		}
		if r.Location != nil {
			lat, lon := r.Location.Latitude, r.Location.Longitude
			view.Latitude = &lat
			view.Longitude = &lon
		}
		for _, p := range r.Photos {
			view.Photos = append(view.Photos, models.PhotoView{
				PhotoID: p.PhotoID,
				S3Key:   p.S3Key,
				URL:     s.photoURL(ctx, p),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// Moderate sets the status of one report after checking the admin
// secret. The status is validated here so the fallback store offers
// the same guarantee as the database check constraint.
func (s *Service) Moderate(ctx context.Context, req models.ModerateRequest) error {
	if s.adminSecret == "" || req.AdminPassword != s.adminSecret {
		return apperrors.ErrUnauthorized
	}

	status := models.ReportStatus(req.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	return s.store.Moderate(req.ReportID, status)
}

// UploadPhoto stores the photo bytes first and only then writes the
// metadata row: a storage failure leaves no dangling metadata, while a
// crash in between leaves at worst an orphan blob.
func (s *Service) UploadPhoto(ctx context.Context, reportID int, filename string, file io.Reader, size int64, contentType string) (string, error) {
	if reportID <= 0 {
		return "", fmt.Errorf("%w: report_id is required", apperrors.ErrValidation)
	}
	if filename == "" {
		return "", fmt.Errorf("%w: a file name is required", apperrors.ErrValidation)
	}

	key := utils.PhotoObjectKey(reportID, filename)
	if err := s.storage.Upload(ctx, key, file, size, contentType); err != nil {
		utils.LogError(err, "Photo upload to object storage failed")
		return "", fmt.Errorf("%w: photo was not stored", apperrors.ErrStorageUnavailable)
	}

	photo := models.ReportPhoto{
		ReportID: reportID,
		S3Key:    key,
	}
	if _, err := s.store.AddPhoto(&photo); err != nil {
		return "", err
	}
	return key, nil
}

// PhotoURL returns a retrievable URL for one photo: presigned when
// storage is configured, the stable download path otherwise.
func (s *Service) PhotoURL(ctx context.Context, photoID int) (*models.PhotoView, error) {
	photo, err := s.store.PhotoByID(photoID)
	if err != nil {
		return nil, err
	}
	return &models.PhotoView{
		PhotoID: photo.PhotoID,
		S3Key:   photo.S3Key,
		URL:     s.photoURL(ctx, *photo),
	}, nil
}

// DownloadPhoto streams one photo's bytes with its inferred MIME type.
func (s *Service) DownloadPhoto(ctx context.Context, photoID int) ([]byte, string, error) {
	photo, err := s.store.PhotoByID(photoID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.storage.Download(ctx, photo.S3Key)
	if err != nil {
		utils.LogError(err, "Photo download from object storage failed")
		return nil, "", fmt.Errorf("%w: photo %d", apperrors.ErrStorageUnavailable, photoID)
	}
	return data, utils.DetectPhotoContentType(photo.S3Key, data), nil
}

// ReportPhotos returns the photo URLs of one report.
func (s *Service) ReportPhotos(ctx context.Context, reportID int) ([]models.PhotoView, error) {
	photos, err := s.store.PhotosByReport(reportID)
	if err != nil {
		return nil, err
	}

	views := make([]models.PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, models.PhotoView{
			PhotoID: p.PhotoID,
			S3Key:   p.S3Key,
			URL:     s.photoURL(ctx, p),
		})
	}
	return views, nil
}

func (s *Service) photoURL(ctx context.Context, photo models.ReportPhoto) string {
	if url, ok := s.storage.PresignedURL(ctx, photo.S3Key, presignTTL); ok {
		return url
	}
	return "/api/photo/download/" + strconv.Itoa(photo.PhotoID)
}

func pointFrom(lat, lon *float64) *models.Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &models.Point{Latitude: *lat, Longitude: *lon}
}

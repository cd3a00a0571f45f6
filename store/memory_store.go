package store

import (
	"sort"
	"sync"
	"time"

	"github.com/tau-lavender/graffity-report/apperrors"
	"github.com/tau-lavender/graffity-report/models"
)

// MemoryStore is the process-lifetime fallback used when DB_URL is not
// set. One shared instance serves every request, so every mutation
// runs under the mutex. Durability ends with the process.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[int64]models.User
	reports      []models.GraffitiReport
	photos       map[int][]models.ReportPhoto
	nextReportID int
	nextPhotoID  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]models.User),
		photos:       make(map[int][]models.ReportPhoto),
		nextReportID: 1,
		nextPhotoID:  1,
	}
}

func (s *MemoryStore) Apply(user *models.User, report *models.GraffitiReport) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user != nil {
		if _, ok := s.users[user.UserID]; !ok {
			u := *user
			u.CreatedAt = time.Now().UTC()
			s.users[user.UserID] = u
		}
		report.UserID = &user.UserID
	}

	report.ReportID = s.nextReportID
	s.nextReportID++
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, *report)
	return report.ReportID, nil
}

func (s *MemoryStore) List(userID *int64) ([]models.GraffitiReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GraffitiReport, 0, len(s.reports))
	for _, r := range s.reports {
		if r.DeletedAt.Valid {
			continue
		}
		if userID != nil && (r.UserID == nil || *r.UserID != *userID) {
			continue
		}
		if r.UserID != nil {
			if u, ok := s.users[*r.UserID]; ok {
				u := u
				r.User = &u
			}
		}
		r.Photos = append([]models.ReportPhoto(nil), s.photos[r.ReportID]...)
		out = append(out, r)
	}

	// Newest first; report ids break ties because they are monotonic.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ReportID > out[j].ReportID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Moderate(reportID int, status models.ReportStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].ReportID == reportID && !s.reports[i].DeletedAt.Valid {
			s.reports[i].Status = status
			return nil
		}
	}
	return apperrors.ErrReportNotFound
}

func (s *MemoryStore) AddPhoto(photo *models.ReportPhoto) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.reportExistsLocked(photo.ReportID) {
		return 0, apperrors.ErrReportNotFound
	}

	photo.PhotoID = s.nextPhotoID
	s.nextPhotoID++
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now().UTC()
	}
	s.photos[photo.ReportID] = append(s.photos[photo.ReportID], *photo)
	return photo.PhotoID, nil
}

func (s *MemoryStore) PhotosByReport(reportID int) ([]models.ReportPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.ReportPhoto(nil), s.photos[reportID]...), nil
}

func (s *MemoryStore) PhotoByID(photoID int) (*models.ReportPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, photos := range s.photos {
		for _, p := range photos {
			if p.PhotoID == photoID {
				p := p
				return &p, nil
			}
		}
	}
	return nil, apperrors.ErrPhotoNotFound
}

func (s *MemoryStore) Ping() error {
	return nil
}

// SoftDeleteReport hides a report and cascades to its photos,
// mirroring the ON DELETE CASCADE of the relational schema.
func (s *MemoryStore) SoftDeleteReport(reportID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].ReportID == reportID && !s.reports[i].DeletedAt.Valid {
			now := time.Now().UTC()
			s.reports[i].DeletedAt.Time = now
			s.reports[i].DeletedAt.Valid = true
			delete(s.photos, reportID)
			return nil
		}
	}
	return apperrors.ErrReportNotFound
}

func (s *MemoryStore) reportExistsLocked(reportID int) bool {
	for _, r := range s.reports {
		if r.ReportID == reportID && !r.DeletedAt.Valid {
			return true
		}
	}
	return false
}

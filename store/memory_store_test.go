package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tau-lavender/graffity-report/apperrors"
	"github.com/tau-lavender/graffity-report/models"
)

func TestMemoryStore_ApplyAssignsMonotonicIDs(t *testing.T) {
	s := NewMemoryStore()

	id1, err := s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})
	assert.NoError(t, err)
	id2, err := s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})
	assert.NoError(t, err)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
}

func TestMemoryStore_ApplyUpsertsUserOnce(t *testing.T) {
	s := NewMemoryStore()
	user := models.User{UserID: 42, Username: "first"}

	s.Apply(&user, &models.GraffitiReport{Status: models.StatusPending})

	// The second submission must not overwrite the stored profile.
	changed := models.User{UserID: 42, Username: "second"}
	s.Apply(&changed, &models.GraffitiReport{Status: models.StatusPending})

	reports, err := s.List(nil)
	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	for _, r := range reports {
		assert.NotNil(t, r.User)
		assert.Equal(t, "first", r.User.Username)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		s.Apply(nil, &models.GraffitiReport{
			Status:    models.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	reports, err := s.List(nil)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, []int{reports[0].ReportID, reports[1].ReportID, reports[2].ReportID})
}

func TestMemoryStore_ListFiltersByUser(t *testing.T) {
	s := NewMemoryStore()
	s.Apply(&models.User{UserID: 1}, &models.GraffitiReport{Status: models.StatusPending})
	s.Apply(&models.User{UserID: 2}, &models.GraffitiReport{Status: models.StatusPending})
	s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})

	userID := int64(2)
	reports, err := s.List(&userID)
	assert.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, int64(2), *reports[0].UserID)

	all, err := s.List(nil)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStore_ModerateUnknownReport(t *testing.T) {
	s := NewMemoryStore()

	err := s.Moderate(5, models.StatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrReportNotFound)
}

func TestMemoryStore_ModerateUpdatesStatus(t *testing.T) {
	s := NewMemoryStore()
	id, _ := s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})

	assert.NoError(t, s.Moderate(id, models.StatusDeclined))

	reports, _ := s.List(nil)
	assert.Equal(t, models.StatusDeclined, reports[0].Status)
}

func TestMemoryStore_AddPhotoRequiresReport(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.AddPhoto(&models.ReportPhoto{ReportID: 1, S3Key: "photos/1/a.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrReportNotFound)
}

func TestMemoryStore_SoftDeleteCascadesToPhotos(t *testing.T) {
	s := NewMemoryStore()
	id, _ := s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})
	s.AddPhoto(&models.ReportPhoto{ReportID: id, S3Key: "photos/1/a.jpg"})

	assert.NoError(t, s.SoftDeleteReport(id))

	reports, _ := s.List(nil)
	assert.Empty(t, reports)

	photos, _ := s.PhotosByReport(id)
	assert.Empty(t, photos)

	assert.ErrorIs(t, s.Moderate(id, models.StatusApproved), apperrors.ErrReportNotFound)
}

func TestMemoryStore_PhotoByID(t *testing.T) {
	s := NewMemoryStore()
	id, _ := s.Apply(nil, &models.GraffitiReport{Status: models.StatusPending})
	photo := models.ReportPhoto{ReportID: id, S3Key: "photos/1/a.jpg"}
	s.AddPhoto(&photo)

	found, err := s.PhotoByID(photo.PhotoID)
	assert.NoError(t, err)
	assert.Equal(t, "photos/1/a.jpg", found.S3Key)

	_, err = s.PhotoByID(999)
	assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
}

func TestMemoryStore_ConcurrentAppliesKeepIDsUnique(t *testing.T) {
	s := NewMemoryStore()
	const n = 64

	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := int64(i % 8)
			id, err := s.Apply(&models.User{UserID: userID}, &models.GraffitiReport{Status: models.StatusPending})
			assert.NoError(t, err)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate report id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

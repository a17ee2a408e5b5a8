package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

const (
	exportURLExpiry  = 24 * time.Hour
	exportDateFormat = "2006-01-02"
)

// ExportResult points at a generated export file.
type ExportResult struct {
	ObjectName  string `json:"object_name"`
	DownloadURL string `json:"download_url"`
	RowCount    int    `json:"row_count"`
}

// ExportService renders a tenant's visits for a date window as CSV,
// uploads the file to object storage, and returns a time-limited
// download link.
type ExportService interface {
	ExportVisits(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*ExportResult, error)
}

type exportService struct {
	visitRepo  repositories.VisitRepository
	storageSvc StorageService
	bucketName string
}

func NewExportService(visitRepo repositories.VisitRepository, storageSvc StorageService, bucketName string) ExportService {
	return &exportService{
		visitRepo:  visitRepo,
		storageSvc: storageSvc,
		bucketName: bucketName,
	}
}

func (s *exportService) ExportVisits(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*ExportResult, error) {
	if to.Before(from) {
		return nil, common.NewValidationError("to", "end date must not be before start date")
	}

	visits, err := s.visitRepo.ListBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeVisitCSV(&buf, visits); err != nil {
		return nil, fmt.Errorf("failed to render CSV: %v", err)
	}

	if err := s.storageSvc.EnsureBucketExists(ctx, s.bucketName); err != nil {
		return nil, fmt.Errorf("failed to prepare export bucket: %v", err)
	}

	objectName := fmt.Sprintf("exports/%s/visits_%s_%s_%s.csv",
		tenantID, from.Format(exportDateFormat), to.Format(exportDateFormat), uuid.NewString()[:8])
	if err := s.storageSvc.UploadObject(ctx, s.bucketName, objectName, "text/csv", &buf, int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("failed to upload export: %v", err)
	}

	url, err := s.storageSvc.GetPresignedURL(ctx, s.bucketName, objectName, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export URL: %v", err)
	}

	return &ExportResult{
		ObjectName:  objectName,
		DownloadURL: url,
		RowCount:    len(visits),
	}, nil
}

func writeVisitCSV(buf *bytes.Buffer, visits []*models.Visit) error {
	w := csv.NewWriter(buf)
	header := []string{
		"visit_date", "visit_type", "first_name", "last_name",
		"zipcode", "city", "state", "household_size",
		"age_0_18", "age_19_59", "age_60_plus",
		"first_visit_this_month", "comments",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, v := range visits {
		visitType := "pantry"
		if v.IsFoodTruck {
			visitType = "food_truck"
		}
		record := []string{
			v.VisitDate.Format(exportDateFormat),
			visitType,
			deref(v.PatronFirstName),
			deref(v.PatronLastName),
			v.Zipcode,
			deref(v.City),
			deref(v.State),
			strconv.Itoa(v.HouseholdSize),
			strconv.Itoa(v.Age0To18),
			strconv.Itoa(v.Age19To59),
			strconv.Itoa(v.Age60Plus),
			strconv.FormatBool(v.FirstVisitThisMonth),
			deref(v.Comments),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

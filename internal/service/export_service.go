package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/storage"
)

// Export is a rendered CSV of one kind's records. Location is the object
// storage URI of the archived copy, empty when archival is not configured.
type Export struct {
	Filename string
	Data     []byte
	Location string
}

// ExportService renders a user's records of one kind as CSV and, when object
// storage is configured, archives a copy.
type ExportService interface {
	ExportCSV(ctx context.Context, userID int64, kind domain.Kind) (*Export, error)
}

type exportService struct {
	transactions repository.TransactionRepository
	storage      storage.Service
	bucket       string
	keyPrefix    string
	now          func() time.Time
}

// NewExportService builds an export service. store may be nil and bucket
// empty, in which case exports are returned without archival.
func NewExportService(transactions repository.TransactionRepository, store storage.Service, bucket, keyPrefix string) ExportService {
	return &exportService{
		transactions: transactions,
		storage:      store,
		bucket:       bucket,
		keyPrefix:    strings.Trim(keyPrefix, "/"),
		now:          time.Now,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, userID int64, kind domain.Kind) (*Export, error) {
	records, err := s.transactions.ListByKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Category", "Amount", "Date", "Description"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		row := []string{
			records[i].Category,
			strconv.FormatFloat(records[i].Amount, 'f', 2, 64),
			records[i].Date.UTC().Format("2006-01-02"),
			records[i].Description,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	export := &Export{
		Filename: fmt.Sprintf("%s-details.csv", strings.ToLower(string(kind))),
		Data:     buf.Bytes(),
	}

	if s.storage == nil || s.bucket == "" {
		return export, nil
	}

	key := fmt.Sprintf("user-%d/%s-%s.csv",
		userID,
		strings.ToLower(string(kind)),
		s.now().UTC().Format("20060102T150405Z"),
	)
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	location, err := s.storage.Upload(ctx, s.bucket, key, bytes.NewReader(export.Data), "text/csv")
	if err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}
	export.Location = location

	return export, nil
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
	"github.com/Dosada05/campus-tournaments/storage"
	"github.com/Dosada05/campus-tournaments/utils"
)

const (
	csvTimeLayout  = "2006-01-02 15:04:05"
	csvContentType = "text/csv; charset=utf-8"
)

var csvHeader = []string{"Student Name", "Email", "College ID", "Department", "Year", "Phone", "Registered At"}

// CSVExport: готовый файл выгрузки. ArchiveURL пуст, если архив не настроен или загрузка не удалась.
type CSVExport struct {
	FileName   string
	Content    []byte
	ArchiveURL string
}

type ExportService interface {
	RegistrationsCSV(ctx context.Context, tournamentID string) (*CSVExport, error)
}

type exportService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	uploader         storage.FileUploader
	loc              *time.Location
	now              Clock
}

// NewExportService: uploader может быть nil, тогда файлы не архивируются.
func NewExportService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	uploader storage.FileUploader,
	loc *time.Location,
	clock Clock,
) ExportService {
	return &exportService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		uploader:         uploader,
		loc:              locationOrUTC(loc),
		now:              clockOrNow(clock),
	}
}

func (s *exportService) RegistrationsCSV(ctx context.Context, tournamentID string) (*CSVExport, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "failed to load tournament for export")
	}
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "failed to list registrations for export")
	}
	if len(registrations) == 0 {
		return nil, ErrNothingToExport
	}

	export := &CSVExport{
		FileName: utils.FileSafeName(t.Title) + "_registrations.csv",
		Content:  RenderRegistrationsCSV(registrations, s.loc),
	}

	if s.uploader != nil {
		key := fmt.Sprintf("exports/%s/%d_%s", t.ID, s.now().Unix(), export.FileName)
		res, err := s.uploader.Upload(ctx, key, csvContentType, bytes.NewReader(export.Content))
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("tournament_id", t.ID).
				Str("key", key).
				Msg("failed to archive registrations export")
		} else {
			export.ArchiveURL = res.Location
		}
	}
	return export, nil
}

// RenderRegistrationsCSV: заголовок без кавычек, каждая ячейка строки в кавычках,
// строки разделены "\n" без завершающего перевода строки.
func RenderRegistrationsCSV(registrations []models.Registration, loc *time.Location) []byte {
	loc = locationOrUTC(loc)

	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ","))
	for _, r := range registrations {
		buf.WriteByte('\n')
		cells := []string{
			r.StudentName, r.Email, r.CollegeID, r.Department, r.Year, r.Phone,
			r.CreatedAt.In(loc).Format(csvTimeLayout),
		}
		for i, cell := range cells {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteCSV(cell))
		}
	}
	return buf.Bytes()
}

func quoteCSV(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/internal/storage"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
	"github.com/shopspring/decimal"
)

// PhotoPrefix is the image store folder for raffle photos.
const PhotoPrefix = "lottery-photos"

const (
	msgInvalidNumbers = "Invalid numbers provided. It must be an array of numbers."
	msgPhotoRequired  = "Please add Photo"
	msgFieldsRequired = "All fields are required."
	msgDateOrder      = "Launch date must be before draw date."
)

// Photo is an uploaded image file.
type Photo struct {
	FileName string
	Mime     string
	Data     []byte
}

// RaffleForm carries raw form values; a nil field was not submitted.
type RaffleForm struct {
	Name                      *string
	Type                      *string
	LaunchDate                *string
	DrawDate                  *string
	TotalEntriesAllowed       *string
	TicketPrice               *string
	Numbers                   *string
	IsUniqueNumberSelection   *string
	IsMultipleNumberSelection *string
	IsApproved                *string
	Photo                     *Photo
}

type RaffleService struct {
	repo          *repositories.RaffleRepository
	storage       storage.Storage
	maxPhotoBytes int64
}

func NewRaffleService(repo *repositories.RaffleRepository, store storage.Storage, maxPhotoBytes int64) *RaffleService {
	return &RaffleService{
		repo:          repo,
		storage:       store,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// ParseNumbers decodes a JSON array of numbers. Values must be whole, so
// 2.0 is accepted and 2.5 is not.
func ParseNumbers(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") {
		return nil, errors.New(errors.ErrCodeValidation, msgInvalidNumbers)
	}
	var decoded []float64
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || decoded == nil {
		return nil, errors.New(errors.ErrCodeValidation, msgInvalidNumbers)
	}
	numbers := make([]int, 0, len(decoded))
	for _, f := range decoded {
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, errors.New(errors.ErrCodeValidation, msgInvalidNumbers)
		}
		numbers = append(numbers, int(f))
	}
	return numbers, nil
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New(errors.ErrCodeValidation, "Invalid date. Use YYYY-MM-DD or RFC 3339.")
}

func (s *RaffleService) CreateRaffle(ctx context.Context, form RaffleForm, createdBy uint) (*models.Raffle, error) {
	numbers, err := ParseNumbers(value(form.Numbers))
	if err != nil {
		return nil, err
	}
	if form.Photo == nil {
		return nil, errors.New(errors.ErrCodeValidation, msgPhotoRequired)
	}
	if blank(form.Name) || blank(form.Type) || blank(form.LaunchDate) || blank(form.DrawDate) ||
		blank(form.TotalEntriesAllowed) || blank(form.TicketPrice) || len(numbers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, msgFieldsRequired)
	}

	raffle := &models.Raffle{
		Numbers:     numbers,
		CreatedByID: &createdBy,
	}
	if err := applyRaffleForm(raffle, form); err != nil {
		return nil, err
	}
	if err := s.validatePhoto(form.Photo); err != nil {
		return nil, err
	}

	uploaded, err := s.upload(ctx, form.Photo)
	if err != nil {
		return nil, err
	}
	raffle.Photo = uploaded

	if err := s.repo.CreateRaffle(ctx, raffle); err != nil {
		s.removePhoto(ctx, uploaded)
		return nil, err
	}

	logger.Info("Raffle created", "raffle_id", raffle.ID, "created_by", createdBy)
	return s.repo.GetRaffleByID(ctx, raffle.ID)
}

func (s *RaffleService) ListRaffles(ctx context.Context) ([]models.Raffle, error) {
	return s.repo.ListRaffles(ctx)
}

func (s *RaffleService) GetRaffle(ctx context.Context, id uint) (*models.Raffle, error) {
	return s.repo.GetRaffleByID(ctx, id)
}

// UpdateRaffle applies the submitted fields. A new photo replaces the hosted one.
func (s *RaffleService) UpdateRaffle(ctx context.Context, id uint, form RaffleForm) (*models.Raffle, error) {
	var numbers []int
	if form.Numbers != nil {
		parsed, err := ParseNumbers(*form.Numbers)
		if err != nil {
			return nil, err
		}
		numbers = parsed
	}

	raffle, err := s.repo.GetRaffleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.Numbers != nil {
		if len(numbers) == 0 {
			return nil, errors.New(errors.ErrCodeValidation, msgFieldsRequired)
		}
		raffle.Numbers = numbers
	}
	if err := applyRaffleForm(raffle, form); err != nil {
		return nil, err
	}

	oldPhoto := ""
	if form.Photo != nil {
		if err := s.validatePhoto(form.Photo); err != nil {
			return nil, err
		}
		uploaded, err := s.upload(ctx, form.Photo)
		if err != nil {
			return nil, err
		}
		oldPhoto = raffle.Photo
		raffle.Photo = uploaded
	}

	if err := s.repo.UpdateRaffleDetails(ctx, raffle); err != nil {
		if form.Photo != nil {
			s.removePhoto(ctx, raffle.Photo)
		}
		return nil, err
	}
	if oldPhoto != "" {
		s.removePhoto(ctx, oldPhoto)
	}
	return s.repo.GetRaffleByID(ctx, id)
}

// removePhoto deletes a hosted image that no raffle references any more.
func (s *RaffleService) removePhoto(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		logger.Warn("Failed to remove raffle photo", "url", url, "error", err)
	}
}

func (s *RaffleService) DeleteRaffle(ctx context.Context, id uint) error {
	raffle, err := s.repo.GetRaffleByID(ctx, id)
	if err != nil {
		return err
	}
	if raffle.Photo != "" {
		if err := s.storage.Delete(ctx, raffle.Photo); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove raffle photo")
		}
	}
	return s.repo.DeleteRaffle(ctx, id)
}

func (s *RaffleService) validatePhoto(photo *Photo) error {
	if !security.ValidateFileType(photo.FileName, security.ImageTypes) {
		return errors.New(errors.ErrCodeValidation, "Photo must be a jpg, jpeg, png, webp or gif image.")
	}
	if !security.ValidateFileSize(int64(len(photo.Data)), s.maxPhotoBytes) {
		return errors.New(errors.ErrCodeValidation, "Photo is empty or too large.")
	}
	return nil
}

func (s *RaffleService) upload(ctx context.Context, photo *Photo) (string, error) {
	resp, err := s.storage.Upload(ctx, &storage.UploadObject{
		Prefix:   PhotoPrefix,
		FileName: photo.FileName,
		Mime:     photo.Mime,
		Data:     photo.Data,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to upload photo")
	}
	return resp.Url, nil
}

// applyRaffleForm copies submitted scalar fields onto the raffle and checks
// the merged record.
func applyRaffleForm(raffle *models.Raffle, form RaffleForm) error {
	if form.Name != nil {
		raffle.Name = security.SanitizeText(*form.Name)
	}
	if form.Type != nil {
		raffle.Type = security.SanitizeText(*form.Type)
	}
	if form.LaunchDate != nil {
		t, err := ParseDate(*form.LaunchDate)
		if err != nil {
			return err
		}
		raffle.LaunchDate = t
	}
	if form.DrawDate != nil {
		t, err := ParseDate(*form.DrawDate)
		if err != nil {
			return err
		}
		raffle.DrawDate = t
	}
	if form.TotalEntriesAllowed != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*form.TotalEntriesAllowed))
		if err != nil || n <= 0 {
			return errors.New(errors.ErrCodeValidation, "Total entries allowed must be a positive whole number.")
		}
		raffle.TotalEntriesAllowed = n
	}
	if form.TicketPrice != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*form.TicketPrice))
		if err != nil || !price.IsPositive() {
			return errors.New(errors.ErrCodeValidation, "Ticket price must be a positive number.")
		}
		raffle.TicketPrice = price
	}

	flags := []struct {
		raw  *string
		dst  *bool
		name string
	}{
		{form.IsUniqueNumberSelection, &raffle.IsUniqueNumberSelection, "isUniqueNumberSelection"},
		{form.IsMultipleNumberSelection, &raffle.IsMultipleNumberSelection, "isMultipleNumberSelection"},
		{form.IsApproved, &raffle.IsApproved, "isApproved"},
	}
	for _, f := range flags {
		if f.raw == nil || strings.TrimSpace(*f.raw) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(*f.raw))
		if err != nil {
			return errors.New(errors.ErrCodeValidation, "Invalid value for "+f.name+".")
		}
		*f.dst = b
	}

	if raffle.Name == "" || raffle.Type == "" {
		return errors.New(errors.ErrCodeValidation, msgFieldsRequired)
	}
	if !raffle.LaunchDate.Before(raffle.DrawDate) {
		return errors.New(errors.ErrCodeValidation, msgDateOrder)
	}
	return nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func blank(s *string) bool {
	return strings.TrimSpace(value(s)) == ""
}

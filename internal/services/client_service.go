package services

import (
	"context"
	"strings"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
	"github.com/mroshb/raffle_api/pkg/utils"
)

const maxClientCodeAttempts = 10

type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type ClientService struct {
	repo     *repositories.ClientRepository
	generate func(name string) string
}

func NewClientService(repo *repositories.ClientRepository) *ClientService {
	return &ClientService{repo: repo, generate: utils.ClientCode}
}

func (s *ClientService) CreateClient(ctx context.Context, input ClientInput) (*models.Client, error) {
	input = cleanClientInput(input)
	if input.Name == "" || input.Email == "" || input.Website == "" {
		return nil, errors.New(errors.ErrCodeValidation, "All fields are required.")
	}

	exists, err := s.repo.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "Client with this email already exists.")
	}

	code, err := s.uniqueCode(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		UniqueID: code,
		Name:     input.Name,
		Email:    input.Email,
		Website:  input.Website,
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		if errors.HasCode(err, errors.ErrCodeAlreadyExists) {
			return nil, errors.New(errors.ErrCodeAlreadyExists, "Client with this email already exists.")
		}
		return nil, err
	}

	logger.Info("Client created", "client_id", client.ID, "unique_id", client.UniqueID)
	return client, nil
}

func (s *ClientService) uniqueCode(ctx context.Context, name string) (string, error) {
	for attempt := 0; attempt < maxClientCodeAttempts; attempt++ {
		code := s.generate(name)
		taken, err := s.repo.UniqueIDExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New(errors.ErrCodeInternalError, "could not generate a unique client id")
}

func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint, input ClientInput) (*models.Client, error) {
	if id == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "Client ID is required.")
	}
	client, err := s.repo.GetClientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input = cleanClientInput(input)
	if input.Name == "" || input.Email == "" || input.Website == "" {
		return nil, errors.New(errors.ErrCodeValidation, "All fields are required.")
	}
	exists, err := s.repo.EmailExists(ctx, input.Email, client.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "Client with this email already exists.")
	}

	client.Name = input.Name
	client.Email = input.Email
	client.Website = input.Website
	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New(errors.ErrCodeValidation, "Client ID is required.")
	}
	return s.repo.DeleteClient(ctx, id)
}

// SetCookieApproval records a visitor's consent answer for the client site.
func (s *ClientService) SetCookieApproval(ctx context.Context, uniqueID string, approved bool) (*models.Client, error) {
	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Client ID is required.")
	}
	client, err := s.repo.GetClientByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	client.IsCookieApproved = approved
	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func cleanClientInput(input ClientInput) ClientInput {
	return ClientInput{
		Name:    security.SanitizeText(input.Name),
		Email:   strings.ToLower(security.SanitizeString(input.Email)),
		Website: security.SanitizeText(input.Website),
	}
}

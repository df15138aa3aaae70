package doctor

import (
	"context"
	"errors"
	"strings"

	doctorRepo "visionhealth/database/repository/doctor"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDoctorNameRequired = errors.New("doctor name is required")
	ErrDoctorNotFound     = doctorRepo.ErrDoctorNotFound
)

type DoctorService interface {
	GetAllDoctors(ctx context.Context) ([]models.Doctor, error)
	AddDoctor(ctx context.Context, d models.Doctor) (*models.InsertResult, error)
	RemoveDoctor(ctx context.Context, id string) (*models.DeleteResult, error)
}

type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

func (s *DefaultDoctorService) GetAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultDoctorService) AddDoctor(ctx context.Context, d models.Doctor) (*models.InsertResult, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, ErrDoctorNameRequired
	}
	d.ID = primitive.NilObjectID
	id, err := s.Repo.Create(ctx, &d)
	if err != nil {
		return nil, err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *DefaultDoctorService) RemoveDoctor(ctx context.Context, id string) (*models.DeleteResult, error) {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

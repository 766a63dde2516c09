package services

import (
	"context"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/repository"
)

// InsurerService answers read-side questions about insurers, mainly which
// vessel categories one covers. The write side (contracting new categories)
// lives in the back-office system, not here.
type InsurerService struct {
	db     database.DB
	logger *logging.Logger
}

// NewInsurerService creates an InsurerService using the given pool.
func NewInsurerService(db database.DB, logger *logging.Logger) *InsurerService {
	return &InsurerService{db: db, logger: logger}
}

// Get returns the insurer together with its permitted category codes. The
// same category set gates survey creation, so this is the view an operator
// checks before scheduling.
func (s *InsurerService) Get(ctx context.Context, id int) (*models.InsurerView, error) {
	insurerRepo := repository.NewInsurerRepository(s.db)

	ins, err := insurerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	codes, err := insurerRepo.ListAllowedCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []string{}
	}
	return &models.InsurerView{Insurer: *ins, AllowedCategories: codes}, nil
}

package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/models"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/repository"
)

// TemplateService is the administrative surface of the template catalog.
// Upserts replace a template and its whole item list transactionally; they
// never rewrite history, existing survey snapshots are untouched.
type TemplateService struct {
	db     database.DB
	logger *logging.Logger
}

// NewTemplateService creates a TemplateService using the given pool.
func NewTemplateService(db database.DB, logger *logging.Logger) *TemplateService {
	return &TemplateService{db: db, logger: logger}
}

// Upsert creates or replaces the template for categoryCode together with its
// item list, in one transaction (never partially applied). The request list
// order becomes the order indices.
func (s *TemplateService) Upsert(ctx context.Context, categoryCode string, req models.UpsertTemplateRequest) (*models.TemplateView, error) {
	categoryCode = strings.TrimSpace(categoryCode)
	if categoryCode == "" {
		return nil, apperr.Validation("category code is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("template name is required")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperr.Validation("item %d: name is required", i+1)
		}
	}

	var tpl *models.ChecklistTemplate
	err := database.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		tpl, err = repository.NewTemplateRepository(tx).Upsert(ctx, categoryCode, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Event("checklist template upserted", "checklist_template", tpl.ID, map[string]any{
		"category_code": categoryCode,
		"items":         len(req.Items),
	})
	return s.GetByCategory(ctx, categoryCode)
}

// Deactivate retires the category's template: surveys created afterwards get
// an empty checklist, surveys created earlier keep their frozen items.
func (s *TemplateService) Deactivate(ctx context.Context, categoryCode string) error {
	categoryCode = strings.TrimSpace(categoryCode)
	if categoryCode == "" {
		return apperr.Validation("category code is required")
	}
	if err := repository.NewTemplateRepository(s.db).Deactivate(ctx, categoryCode); err != nil {
		return err
	}
	s.logger.Info("checklist template deactivated for category " + categoryCode)
	return nil
}

// GetByCategory returns the active template and its ordered active items.
func (s *TemplateService) GetByCategory(ctx context.Context, categoryCode string) (*models.TemplateView, error) {
	tpl, items, err := repository.NewTemplateRepository(s.db).GetActiveByCategory(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	return &models.TemplateView{ChecklistTemplate: *tpl, Items: items}, nil
}

// Package models defines the domain entities and data transfer objects for the
// vessel-inspection service. It includes database models mapped to PostgreSQL
// tables, request DTOs for handler input, and enriched view models returned by
// the API.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Insurer represents an insurance company that commissions vessel surveys.
// The categories of vessel an insurer is willing to cover are listed in
// insurer_allowed_categories (see InsurerAllowedCategory).
//
// Database Table: insurers
type Insurer struct {
	ID        int       `db:"id" json:"id"`                 // Primary key
	Name      string    `db:"name" json:"name"`             // Company name
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Row creation timestamp
}

// InsurerAllowedCategory is one entry of an insurer's permitted-category set.
// A vessel of category X can only be tied to an insurer that has an entry
// (insurer_id, X) in this table.
//
// Database Table: insurer_allowed_categories
// Unique Constraint: (insurer_id, category_code)
type InsurerAllowedCategory struct {
	ID           int    `db:"id"`            // Primary key
	InsurerID    int    `db:"insurer_id"`    // Foreign key to insurers.id
	CategoryCode string `db:"category_code"` // Vessel category code (e.g. "JET_SKI")
}

// Vessel represents the craft under survey. The category code drives which
// checklist template is snapshotted when a survey is created for this vessel.
//
// Database Table: vessels
type Vessel struct {
	ID           int       `db:"id"`            // Primary key
	InsurerID    int       `db:"insurer_id"`    // Foreign key to insurers.id
	ClientID     int       `db:"client_id"`     // Foreign key to clients.id (owner)
	Name         string    `db:"name"`          // Vessel name
	CategoryCode string    `db:"category_code"` // Category code (e.g. "JET_SKI", "SAILBOAT")
	Registration string    `db:"registration"`  // Hull/registry number
	CreatedAt    time.Time `db:"created_at"`    // Row creation timestamp
}

// ChecklistTemplate is the reusable, category-scoped list of photographic
// checkpoints. At most one template exists per category, enforced by a unique
// index on category_code.
//
// Database Table: checklist_templates
// Related: ChecklistTemplateItem (one-to-many)
type ChecklistTemplate struct {
	ID           int       `db:"id" json:"id"`                       // Primary key
	CategoryCode string    `db:"category_code" json:"category_code"` // Unique vessel category code
	Name         string    `db:"name" json:"name"`                   // Display name
	Description  string    `db:"description" json:"description"`     // Free-text description
	Active       bool      `db:"active" json:"active"`               // Inactive templates are never snapshotted
	CreatedAt    time.Time `db:"created_at" json:"created_at"`       // Row creation timestamp
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`       // Last upsert timestamp
}

// ChecklistTemplateItem is one checkpoint definition owned by a template.
// Editing or deactivating an item never touches snapshots already taken from
// it; surveys keep their frozen copies.
//
// Database Table: checklist_template_items
// Related: ChecklistTemplate (many-to-one)
type ChecklistTemplateItem struct {
	ID           int    `db:"id" json:"id"`                       // Primary key
	TemplateID   int    `db:"template_id" json:"template_id"`     // Foreign key to checklist_templates.id
	OrderIndex   int    `db:"order_index" json:"order_index"`     // Position within the template
	Name         string `db:"name" json:"name"`                   // Checkpoint name
	Description  string `db:"description" json:"description"`     // Instructions for the surveyor
	Mandatory    bool   `db:"mandatory" json:"mandatory"`         // Display/approval concern, not a state-machine rule
	VideoAllowed bool   `db:"video_allowed" json:"video_allowed"` // Whether video evidence is acceptable
	Active       bool   `db:"active" json:"active"`               // Inactive items are skipped at snapshot time
}

// Survey represents one inspection engagement (vistoria) for a vessel.
// It exclusively owns its checklist snapshot; deleting a survey cascades to
// its survey_checklist_items.
//
// Database Table: surveys
type Survey struct {
	ID          int          `db:"id" json:"id"`                               // Primary key
	VesselID    int          `db:"vessel_id" json:"vessel_id"`                 // Foreign key to vessels.id
	LocationID  int          `db:"location_id" json:"location_id"`             // Foreign key to locations.id
	SurveyorID  int          `db:"surveyor_id" json:"surveyor_id"`             // Foreign key to users.id
	AdminID     int          `db:"admin_id" json:"admin_id"`                   // Reviewing administrator (users.id)
	Status      SurveyStatus `db:"status" json:"status"`                       // Lifecycle status
	ScheduledAt *time.Time   `db:"scheduled_at" json:"scheduled_at,omitempty"` // Planned inspection date (nullable)
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`               // Row creation timestamp
}

// SurveyChecklistItem is the frozen copy of a template item made at survey
// creation. Order, name, description and flags are copied verbatim and never
// change when the source template is edited later.
//
// Invariant: Status == COMPLETED exactly when CompletedAt is non-nil.
// PhotoID is a non-owning reference; clearing it never deletes the photo row.
//
// Database Table: survey_checklist_items
// Related: Survey (many-to-one, cascade delete), Photo (loose reference)
type SurveyChecklistItem struct {
	ID             int        `db:"id" json:"id"`                               // Primary key
	SurveyID       int        `db:"survey_id" json:"survey_id"`                 // Foreign key to surveys.id
	TemplateItemID *int       `db:"template_item_id" json:"template_item_id"`   // Source item, kept for audit only (nullable)
	OrderIndex     int        `db:"order_index" json:"order_index"`             // Copied from the template item
	Name           string     `db:"name" json:"name"`                           // Copied from the template item
	Description    string     `db:"description" json:"description"`             // Copied from the template item
	Mandatory      bool       `db:"mandatory" json:"mandatory"`                 // Copied from the template item
	VideoAllowed   bool       `db:"video_allowed" json:"video_allowed"`         // Copied from the template item
	Status         ItemStatus `db:"status" json:"status"`                       // PENDING or COMPLETED
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"` // Set iff Status is COMPLETED
	PhotoID        *int       `db:"photo_id" json:"photo_id,omitempty"`         // Bound photo (nullable)
}

// PhotoType classifies an uploaded photograph (hull, engine, registration
// plate, ...). Uploads must reference an existing type.
//
// Database Table: photo_types
type PhotoType struct {
	ID   int    `db:"id" json:"id"`     // Primary key
	Name string `db:"name" json:"name"` // Classifier name
}

// Photo represents one uploaded photograph. The storage key is always
// persisted in full so deletion never has to guess the backend path; legacy
// rows holding only a bare filename are handled by the local adapter's
// fallback scan.
//
// A photo superseded by a rebind is kept, row and file, for auditability.
//
// Database Table: photos
type Photo struct {
	ID               int       `db:"id" json:"id"`                               // Primary key
	SurveyID         int       `db:"survey_id" json:"survey_id"`                 // Foreign key to surveys.id
	PhotoTypeID      int       `db:"photo_type_id" json:"photo_type_id"`         // Foreign key to photo_types.id
	StorageKey       string    `db:"storage_key" json:"storage_key"`             // Backend key or path of the stored file
	OriginalFilename string    `db:"original_filename" json:"original_filename"` // Filename as uploaded
	ContentType      string    `db:"content_type" json:"content_type"`           // Declared MIME type
	SizeBytes        int64     `db:"size_bytes" json:"size_bytes"`               // Stored size in bytes
	Note             string    `db:"note" json:"note,omitempty"`                 // Optional free-text note
	CreatedAt        time.Time `db:"created_at" json:"created_at"`               // Upload timestamp
}

// ============================================================================
// Data Transfer Objects - Handler Input
// ============================================================================

// CreateSurveyRequest is the JSON body of POST /surveys.
type CreateSurveyRequest struct {
	VesselID    int        `json:"vessel_id"`
	LocationID  int        `json:"location_id"`
	SurveyorID  int        `json:"surveyor_id"`
	AdminID     int        `json:"admin_id"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateSurveyStatusRequest is the JSON body of PATCH /surveys/:id/status.
type UpdateSurveyStatusRequest struct {
	Status string `json:"status"` // One of the SurveyStatus values
}

// UpdateItemStatusRequest is the JSON body of PATCH /checklist-items/:id/status.
type UpdateItemStatusRequest struct {
	Status  string `json:"status"`             // "COMPLETED" or "PENDING"
	PhotoID *int   `json:"photo_id,omitempty"` // Optional binding when completing
}

// UpsertTemplateRequest is the JSON body of PUT /templates/:category.
// The item list fully replaces the template's current items; list order is
// authoritative for order indices.
type UpsertTemplateRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Items       []TemplateItemRequest `json:"items"`
}

// TemplateItemRequest is one item definition within UpsertTemplateRequest.
type TemplateItemRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Mandatory    bool   `json:"mandatory"`
	VideoAllowed bool   `json:"video_allowed"`
}

// ============================================================================
// View Models - API Responses
// ============================================================================

// SurveyView is the survey representation returned on creation, enriched with
// the number of checklist items snapshotted from the template.
type SurveyView struct {
	Survey
	ChecklistItemsCreated int `json:"checklist_items_created"`
}

// InsurerView combines an insurer with the vessel category codes it covers,
// so operators can see up front which vessels are eligible for a survey.
type InsurerView struct {
	Insurer
	AllowedCategories []string `json:"allowed_categories"`
}

// TemplateView combines a template with its ordered active items.
type TemplateView struct {
	ChecklistTemplate
	Items []ChecklistTemplateItem `json:"items"`
}

package models

import (
	"time"
)

// Quote status lifecycle. Pending quotes are drafts the supplier has not
// submitted yet and never participate in comparison or summary.
const (
	QuoteStatusPending   = "Pending"
	QuoteStatusSubmitted = "Submitted"
	QuoteStatusAccepted  = "Accepted"
	QuoteStatusRejected  = "Rejected"
)

// User represents a producer account on the platform.
type User struct {
	ID          int       `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	CompanyName string    `json:"company_name" db:"company_name"`
	PhoneNo     string    `json:"phone_no" db:"phone_no"`
	Suspended   bool      `json:"suspended" db:"suspended"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Session struct {
	UserID                int       `json:"user_id" db:"user_id"`
	SessionID             string    `json:"session_id" db:"session_id"`
	HostName              string    `json:"host_name" db:"host_name"`
	IPAddress             string    `json:"ip_address" db:"ip_address"`
	Timestamp             time.Time `json:"timestamp" db:"timestp"`
	ExpiresAt             time.Time `json:"expires_at" db:"expires_at"`
	RefreshToken          string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"-" db:"refresh_token_expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	SessionID    string `json:"session_id"`
	User         User   `json:"user"`
}

// Project is a production a producer is organizing. Assets belong to
// exactly one project.
type Project struct {
	ProjectID   int        `json:"project_id" db:"project_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	ProducerID  int        `json:"producer_id" db:"producer_id"`
	EventDate   *time.Time `json:"event_date,omitempty" db:"event_date"`
	Status      string     `json:"status" db:"status"`
	Budget      float64    `json:"budget" db:"budget"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Asset is a deliverable production item within a project, the unit
// suppliers quote against.
type Asset struct {
	AssetID        int       `json:"asset_id" db:"asset_id"`
	ProjectID      int       `json:"project_id" db:"project_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Category       string    `json:"category" db:"category"`
	Quantity       int       `json:"quantity" db:"quantity"`
	Specifications string    `json:"specifications" db:"specifications"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier rows are managed through GORM, so they carry both tag sets.
type Supplier struct {
	SupplierID  int       `json:"supplier_id" gorm:"column:supplier_id;primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Email       string    `json:"email" gorm:"column:email"`
	Phone       string    `json:"phone" gorm:"column:phone"`
	Address     string    `json:"address" gorm:"column:address"`
	CompanyName string    `json:"company_name" gorm:"column:company_name"`
	Category    string    `json:"category" gorm:"column:category"`
	Status      string    `json:"status" gorm:"column:status"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// CostBreakdown itemizes a quote's cost. Components need not sum exactly
// to the quote total; suppliers often quote a rounded total.
type CostBreakdown struct {
	Labor     float64 `json:"labor"`
	Materials float64 `json:"materials"`
	Equipment float64 `json:"equipment"`
	Other     float64 `json:"other"`
}

// Quote is a supplier's priced offer against one asset.
type Quote struct {
	ID                int            `json:"id" db:"id"`
	QuoteNumber       string         `json:"quote_number" db:"quote_number"`
	AssetID           int            `json:"asset_id" db:"asset_id"`
	SupplierID        int            `json:"supplier_id" db:"supplier_id"`
	SupplierName      string         `json:"supplier_name" db:"supplier_name"`
	Cost              float64        `json:"cost" db:"cost"`
	CostBreakdown     *CostBreakdown `json:"cost_breakdown,omitempty"`
	Status            string         `json:"status" db:"status"`
	ValidUntil        *time.Time     `json:"valid_until,omitempty" db:"valid_until"`
	ResponseTimeHours *int           `json:"response_time_hours,omitempty" db:"response_time_hours"`
	Notes             string         `json:"notes" db:"notes"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

type QuoteCreateRequest struct {
	AssetID           int            `json:"asset_id" binding:"required"`
	SupplierID        int            `json:"supplier_id" binding:"required"`
	Cost              float64        `json:"cost"`
	CostBreakdown     *CostBreakdown `json:"cost_breakdown,omitempty"`
	ValidUntil        *time.Time     `json:"valid_until,omitempty"`
	ResponseTimeHours *int           `json:"response_time_hours,omitempty"`
	Notes             string         `json:"notes"`
}

type QuoteStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ActivityLog rows are written through GORM after every mutation.
type ActivityLog struct {
	ID           int       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	EventContext string    `json:"event_context" gorm:"column:event_context"`
	EventName    string    `json:"event_name" gorm:"column:event_name"`
	Description  string    `json:"description" gorm:"column:description"`
	UserName     string    `json:"user_name" gorm:"column:user_name"`
	HostName     string    `json:"host_name" gorm:"column:host_name"`
	IPAddress    string    `json:"ip_address" gorm:"column:ip_address"`
	ProjectID    int       `json:"project_id" gorm:"column:project_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// EmailData carries the variables substituted into notification templates.
type EmailData struct {
	RecipientName  string
	RecipientEmail string
	SupplierName   string
	AssetName      string
	ProjectName    string
	QuoteNumber    string
	QuoteCost      float64
	QuoteStatus    string
}

// Brief is a producer's free-text production brief sent to the external
// decomposition API. Only the request/response contract lives here; the
// decomposition algorithm itself is an external service.
type Brief struct {
	ProjectID int    `json:"project_id" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body" binding:"required"`
}

// AssetDraft is one proposed asset returned by the decomposition API.
type AssetDraft struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Quantity       int     `json:"quantity"`
	EstimatedCost  float64 `json:"estimated_cost"`
	Specifications string  `json:"specifications"`
}

type BriefDecomposition struct {
	ProjectID int          `json:"project_id"`
	Drafts    []AssetDraft `json:"drafts"`
	Model     string       `json:"model,omitempty"`
}

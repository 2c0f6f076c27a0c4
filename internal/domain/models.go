package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// QuoteType is the shipping mode a quote is priced for
type QuoteType string

const (
	QuoteTypeHotshot QuoteType = "Hotshot"
	QuoteTypeAir     QuoteType = "Air"
)

// ParseQuoteType matches a raw quote type case-insensitively.
// Returns false for anything other than hotshot or air.
func ParseQuoteType(raw string) (QuoteType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hotshot":
		return QuoteTypeHotshot, true
	case "air":
		return QuoteTypeAir, true
	default:
		return "", false
	}
}

// IsAir reports whether the quote type is air freight
func (t QuoteType) IsAir() bool {
	return strings.EqualFold(string(t), string(QuoteTypeAir))
}

// WeightMethod records which weight won the billable weight comparison
type WeightMethod string

const (
	WeightMethodActual      WeightMethod = "Actual"
	WeightMethodDimensional WeightMethod = "Dimensional"
)

// UserRole represents the account role of a quote tool user
type UserRole string

const (
	UserRoleCustomer   UserRole = "customer"
	UserRoleEmployee   UserRole = "employee"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// Quote is a persisted freight quote. Rows are immutable after creation.
type Quote struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	QuoteID       string         `gorm:"type:varchar(36);not null;uniqueIndex;column:quote_id" json:"quoteId"`
	QuoteType     QuoteType      `gorm:"type:varchar(20);not null;column:quote_type" json:"quoteType"`
	Origin        string         `gorm:"type:varchar(20);not null" json:"origin"`
	Destination   string         `gorm:"type:varchar(20);not null" json:"destination"`
	Pieces        int            `gorm:"not null;default:1" json:"pieces"`
	Length        float64        `gorm:"not null;default:0" json:"length"`
	Width         float64        `gorm:"not null;default:0" json:"width"`
	Height        float64        `gorm:"not null;default:0" json:"height"`
	ActualWeight  float64        `gorm:"not null;default:0;column:actual_weight" json:"actualWeight"`
	DimWeight     float64        `gorm:"not null;default:0;column:dim_weight" json:"dimWeight"`
	Weight        float64        `gorm:"not null;default:0" json:"weight"`
	WeightMethod  WeightMethod   `gorm:"type:varchar(20);not null;column:weight_method" json:"weightMethod"`
	RateSet       string         `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index" json:"rateSet"`
	Zone          string         `gorm:"type:varchar(20)" json:"zone"`
	Total         float64        `gorm:"not null;default:0" json:"total"`
	QuoteMetadata datatypes.JSON `gorm:"column:quote_metadata" json:"quoteMetadata"`
	Warnings      string         `gorm:"type:text" json:"warnings"`
	UserID        *uint          `gorm:"column:user_id;index" json:"userId,omitempty"`
	User          *User          `gorm:"foreignKey:UserID" json:"-"`
	UserEmail     string         `gorm:"type:varchar(255);column:user_email" json:"userEmail"`
	RequestIP     string         `gorm:"type:varchar(64);column:request_ip" json:"requestIp"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

// WarningList splits the stored newline-joined warnings
func (q *Quote) WarningList() []string {
	if strings.TrimSpace(q.Warnings) == "" {
		return []string{}
	}
	return strings.Split(q.Warnings, "\n")
}

// Accessorial is an optional add-on charge. Guarantee entries carry a whole
// percentage in Amount and are applied to linehaul plus beyond only.
type Accessorial struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Amount       float64 `gorm:"not null;default:0" json:"amount"`
	IsPercentage bool    `gorm:"not null;default:false;column:is_percentage" json:"isPercentage"`
}

// HotshotRate is one mileage bracket of the ground rate table
type HotshotRate struct {
	ID        uint    `gorm:"primaryKey"`
	Miles     float64 `gorm:"not null;index"`
	Zone      string  `gorm:"type:varchar(10);not null;index"`
	PerLb     float64 `gorm:"not null;default:0;column:per_lb"`
	PerMile   float64 `gorm:"not null;default:0;column:per_mile"`
	MinCharge float64 `gorm:"not null;default:0;column:min_charge"`
	FuelPct   float64 `gorm:"not null;default:0;column:fuel_pct"`
	RateSet   string  `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index"`
}

// ZipZone maps a ZIP code to an air destination zone and beyond code
type ZipZone struct {
	ID       uint   `gorm:"primaryKey"`
	Zipcode  string `gorm:"type:varchar(10);not null;index"`
	DestZone int    `gorm:"not null;column:dest_zone"`
	Beyond   string `gorm:"type:varchar(10)"`
	RateSet  string `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index"`
}

// CostZone maps a concatenated origin/destination zone pair to a cost zone
type CostZone struct {
	ID       uint   `gorm:"primaryKey"`
	Concat   string `gorm:"type:varchar(10);not null;index"`
	CostZone string `gorm:"type:varchar(10);not null;column:cost_zone"`
	RateSet  string `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index"`
}

// AirCostZone holds the air pricing for a cost zone
type AirCostZone struct {
	ID          uint    `gorm:"primaryKey"`
	Zone        string  `gorm:"type:varchar(10);not null;index"`
	MinCharge   float64 `gorm:"not null;default:0;column:min_charge"`
	PerLb       float64 `gorm:"not null;default:0;column:per_lb"`
	WeightBreak float64 `gorm:"not null;default:0;column:weight_break"`
	RateSet     string  `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index"`
}

// BeyondRate is the surcharge for delivering beyond an airport service area
type BeyondRate struct {
	ID        uint    `gorm:"primaryKey"`
	Zone      string  `gorm:"type:varchar(10);not null;index"`
	Rate      float64 `gorm:"not null;default:0"`
	UpToMiles float64 `gorm:"not null;default:0;column:up_to_miles"`
	RateSet   string  `gorm:"type:varchar(50);not null;default:'default';column:rate_set;index"`
}

// ZipCoordinate is the centroid of a ZIP code used for hotshot mileage
type ZipCoordinate struct {
	Zip       string  `gorm:"type:varchar(10);primaryKey"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

// User is a quote tool account
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name             string    `gorm:"type:varchar(200)" json:"name"`
	Company          string    `gorm:"type:varchar(200)" json:"company"`
	Role             UserRole  `gorm:"type:varchar(50);not null;default:'customer'" json:"role"`
	RateSet          string    `gorm:"type:varchar(50);not null;default:'default';column:rate_set" json:"rateSet"`
	CanSendMail      bool      `gorm:"not null;default:false;column:can_send_mail" json:"canSendMail"`
	EmployeeApproved bool      `gorm:"not null;default:false;column:employee_approved" json:"employeeApproved"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// HasMailPrivileges reports whether the account may use staff-only mail features
func (u *User) HasMailPrivileges() bool {
	if u == nil {
		return false
	}
	if u.CanSendMail {
		return true
	}
	switch UserRole(strings.ToLower(string(u.Role))) {
	case UserRoleSuperAdmin:
		return true
	case UserRoleEmployee:
		return u.EmployeeApproved
	default:
		return false
	}
}

// EmailQuoteRequest is a booking or volume pricing request for a quote
type EmailQuoteRequest struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	QuoteID             string    `gorm:"type:varchar(36);not null;index;column:quote_id" json:"quoteId"`
	ShipperName         string    `gorm:"type:varchar(200);column:shipper_name" json:"shipperName"`
	ShipperAddress      string    `gorm:"type:varchar(500);column:shipper_address" json:"shipperAddress"`
	ShipperContact      string    `gorm:"type:varchar(200);column:shipper_contact" json:"shipperContact"`
	ShipperPhone        string    `gorm:"type:varchar(50);column:shipper_phone" json:"shipperPhone"`
	ConsigneeName       string    `gorm:"type:varchar(200);column:consignee_name" json:"consigneeName"`
	ConsigneeAddress    string    `gorm:"type:varchar(500);column:consignee_address" json:"consigneeAddress"`
	ConsigneeContact    string    `gorm:"type:varchar(200);column:consignee_contact" json:"consigneeContact"`
	ConsigneePhone      string    `gorm:"type:varchar(50);column:consignee_phone" json:"consigneePhone"`
	TotalWeight         float64   `gorm:"column:total_weight" json:"totalWeight"`
	SpecialInstructions string    `gorm:"type:text;column:special_instructions" json:"specialInstructions"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// EmailDispatchLog records every outbound email for auditing
type EmailDispatchLog struct {
	ID        uint      `gorm:"primaryKey"`
	Feature   string    `gorm:"type:varchar(50);not null;index"`
	UserID    *uint     `gorm:"column:user_id;index"`
	Recipient string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

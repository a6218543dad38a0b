package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CartStatusUnpaid     = "Unpaid"
	CartStatusPaid       = "Paid"
	CartStatusConfirmed  = "Confirmed"
	CartStatusSuccessful = "Successful"
)

const (
	PurchaseStatusPending    = "Pending"
	PurchaseStatusSuccessful = "Successful"
	// Declared for history records but no operation drives these transitions yet.
	PurchaseStatusDelivered = "Delivered"
	PurchaseStatusCancelled = "Cancelled"
)

const (
	PaymentMethodEwallet = "ewallet"
	PaymentMethodBanking = "banking"
	PaymentMethodCOD     = "cod"
)

// ActionConfirmTransaction marks a notification carrying a pending
// seller-side confirmation. Cleared when the seller confirms.
const ActionConfirmTransaction = "confirm_transaction"

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Username     string    `gorm:"unique;not null"  json:"username"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Name         string    `gorm:"not null"         json:"name"`
	AvatarURL    string    `json:"avatar_url"`
	QRCodeURL    string    `json:"qr_code_url"`
	Role         string    `gorm:"not null"         json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"       json:"id"`
	Token     string    `gorm:"unique;not null"  json:"token"`
	UserID    uuid.UUID `gorm:"index;not null"   json:"user_id"`
	Role      string    `gorm:"not null"         json:"role"`
	ExpiresAt int64     `gorm:"not null"         json:"expires_at"`
	Revoked   bool      `gorm:"default:false"    json:"revoked"`
}

type Product struct {
	ID           uuid.UUID `gorm:"primaryKey"      json:"id"`
	Name         string    `gorm:"not null"        json:"name"`
	Description  string    `gorm:"not null"        json:"description"`
	Price        float64   `gorm:"not null"        json:"price"`
	Category     string    `gorm:"index"           json:"category"`
	SellerID     uuid.UUID `gorm:"index;not null"  json:"seller_id"`
	SellerName   string    `gorm:"not null"        json:"seller_name"`
	SellerAvatar string    `json:"seller_avatar,omitempty"`
	ImageURLs    []string  `gorm:"serializer:json" json:"image_urls"`
	DateAdded    time.Time `gorm:"index;not null"  json:"date_added"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CartItem is one buyer's intent to purchase one listing. Keyed by
// (user, product); quantity is always >= 1, an update to zero or less
// deletes the row instead.
type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"             json:"quantity"`
	Status    string    `gorm:"not null;default:Unpaid"                json:"status"`
	DateAdded time.Time `gorm:"not null"                               json:"date_added"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Purchase is the buyer's durable record of an initiated purchase. The
// product fields are a snapshot taken at initiation so later edits or
// deletion of the listing do not corrupt history.
type Purchase struct {
	ID           uuid.UUID `gorm:"primaryKey"      json:"id"`
	BuyerID      uuid.UUID `gorm:"index;not null"  json:"buyer_id"`
	ProductID    uuid.UUID `gorm:"index;not null"  json:"product_id"`
	ProductName  string    `gorm:"not null"        json:"product_name"`
	ProductImage string    `json:"product_image"`
	Price        float64   `gorm:"not null"        json:"price"`
	SellerID     uuid.UUID `gorm:"index;not null"  json:"seller_id"`
	SellerName   string    `gorm:"not null"        json:"seller_name"`
	BuyerName    string    `gorm:"not null"        json:"buyer_name"`
	PurchaseDate time.Time `gorm:"index;not null"  json:"purchase_date"`
	Status       string    `gorm:"index;not null"  json:"status"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Notification struct {
	ID      uuid.UUID `gorm:"primaryKey"      json:"id"`
	UserID  uuid.UUID `gorm:"index;not null"  json:"user_id"`
	Title   string    `gorm:"not null"        json:"title"`
	Message string    `gorm:"not null"        json:"message"`
	Date    time.Time `gorm:"index;not null"  json:"date"`
	// Read is monotonic: once true the system never resets it.
	Read       bool      `gorm:"default:false" json:"read"`
	ActionURL  string    `json:"action_url,omitempty"`
	ActionType string    `gorm:"index"         json:"action_type,omitempty"`
	BuyerID    uuid.UUID `json:"buyer_id,omitempty"`
	ProductID  uuid.UUID `json:"product_id,omitempty"`
	PurchaseID uuid.UUID `json:"purchase_id,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type Report struct {
	ID           uuid.UUID `gorm:"primaryKey"      json:"id"`
	ProductID    uuid.UUID `gorm:"index;not null"  json:"product_id"`
	ProductName  string    `gorm:"not null"        json:"product_name"`
	ReporterID   uuid.UUID `gorm:"index;not null"  json:"reporter_id"`
	ReporterName string    `gorm:"not null"        json:"reporter_name"`
	Reason       string    `gorm:"not null"        json:"reason"`
	Date         time.Time `gorm:"index;not null"  json:"date"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID        uuid.UUID `gorm:"primaryKey"      json:"id"`
	ChatID    string    `gorm:"index;not null"  json:"chat_id"`
	SenderID  uuid.UUID `gorm:"not null"        json:"sender_id"`
	Text      string    `json:"text,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Timestamp time.Time `gorm:"index;not null"  json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

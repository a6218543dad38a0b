package transport

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type InitiatePurchaseRequest struct {
	ProductID     uuid.UUID `json:"product_id"`
	PaymentMethod string    `json:"payment_method"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"image_urls"`
}

type PatchProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	ImageURLs   *[]string `json:"image_urls"`
}

type ReportRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

type SendMessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

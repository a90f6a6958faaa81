package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type ReviewType string

const (
	ReviewProduct  ReviewType = "product"
	ReviewOrder    ReviewType = "order"
	ReviewDelivery ReviewType = "delivery"
)

func (t ReviewType) Valid() bool {
	return t == ReviewProduct || t == ReviewOrder || t == ReviewDelivery
}

const (
	MaxReviewComment = 500
	MaxReviewPhotos  = 5
)

type Review struct {
	ID        string         `json:"id"`
	Type      ReviewType     `json:"type"`
	UserID    string         `json:"userId"`
	User      *User          `json:"user,omitempty"`
	ProductID string         `json:"productId,omitempty"`
	OrderID   string         `json:"orderId,omitempty"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment,omitempty"`
	Photos    []string       `json:"photos,omitempty"`
	IsVisible bool           `json:"isVisible"`
	Helpful   int            `json:"helpful"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ReviewPage struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

type ReviewStats struct {
	TotalReviews     int         `json:"totalReviews"`
	AverageRating    float64     `json:"averageRating"`
	MinRating        int         `json:"minRating"`
	MaxRating        int         `json:"maxRating"`
	StarDistribution map[int]int `json:"starDistribution"`
}

type ReviewFilters struct {
	Type      ReviewType
	ProductID string
	OrderID   string
	UserID    string
	Rating    int
	Limit     int
	Offset    int
}

func ParseReviewFilters(q url.Values) (ReviewFilters, error) {
	f := ReviewFilters{
		Type:      ReviewType(q.Get("type")),
		ProductID: q.Get("productId"),
		OrderID:   q.Get("orderId"),
		UserID:    q.Get("userId"),
	}
	var err error
	if f.Rating, err = optInt(q, "rating"); err != nil {
		return f, err
	}
	if f.Limit, err = optInt(q, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = optInt(q, "offset"); err != nil {
		return f, err
	}
	if f.Type != "" && !f.Type.Valid() {
		return f, invalid("type", "tipo de avaliação inválido")
	}
	if f.Rating > 5 {
		return f, invalid("rating", "avaliação deve ser entre 1 e 5")
	}
	return f, nil
}

func (f ReviewFilters) Values() url.Values {
	v := url.Values{}
	setIf(v, "type", string(f.Type))
	setIf(v, "productId", f.ProductID)
	setIf(v, "orderId", f.OrderID)
	setIf(v, "userId", f.UserID)
	if f.Rating > 0 {
		v.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

type CreateReviewRequest struct {
	Type      ReviewType     `json:"type"`
	ProductID string         `json:"productId,omitempty"`
	OrderID   string         `json:"orderId,omitempty"`
	Rating    int            `json:"rating"`
	Comment   *string        `json:"comment,omitempty"`
	Photos    []string       `json:"photos,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Normalize trims the comment and drops it when blank.
func (r *CreateReviewRequest) Normalize() {
	r.Comment = trimComment(r.Comment)
	if len(r.Photos) == 0 {
		r.Photos = nil
	}
}

func (r CreateReviewRequest) Validate() error {
	if !r.Type.Valid() {
		return invalid("type", "tipo de avaliação inválido")
	}
	if r.Rating == 0 {
		return invalid("rating", "Por favor, selecione uma avaliação em estrelas")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return invalid("rating", "avaliação deve ser entre 1 e 5")
	}
	if r.Type == ReviewProduct && r.ProductID == "" {
		return invalid("productId", "productId é obrigatório para avaliação de produto")
	}
	if r.Type != ReviewProduct && r.OrderID == "" {
		return invalid("orderId", "orderId é obrigatório para avaliação de pedido ou entrega")
	}
	if err := validateComment(r.Comment); err != nil {
		return err
	}
	if len(r.Photos) > MaxReviewPhotos {
		return invalid("photos", "máximo de 5 fotos")
	}
	return nil
}

type UpdateReviewRequest struct {
	Rating   *int           `json:"rating,omitempty"`
	Comment  *string        `json:"comment,omitempty"`
	Photos   []string       `json:"photos,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (r *UpdateReviewRequest) Normalize() {
	if r.Comment != nil {
		c := strings.TrimSpace(*r.Comment)
		r.Comment = &c
	}
}

func (r UpdateReviewRequest) Validate() error {
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return invalid("rating", "avaliação deve ser entre 1 e 5")
	}
	if err := validateComment(r.Comment); err != nil {
		return err
	}
	if len(r.Photos) > MaxReviewPhotos {
		return invalid("photos", "máximo de 5 fotos")
	}
	return nil
}

func trimComment(c *string) *string {
	if c == nil {
		return nil
	}
	s := strings.TrimSpace(*c)
	if s == "" {
		return nil
	}
	return &s
}

func validateComment(c *string) error {
	if c != nil && utf8.RuneCountInString(*c) > MaxReviewComment {
		return invalid("comment", "comentário deve ter no máximo 500 caracteres")
	}
	return nil
}

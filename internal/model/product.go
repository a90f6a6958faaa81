package model

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryEletronicos ProductCategory = "eletronicos"
	CategoryRoupas      ProductCategory = "roupas"
	CategoryAlimentos   ProductCategory = "alimentos"
	CategoryCasa        ProductCategory = "casa"
	CategoryEsportes    ProductCategory = "esportes"
	CategorySaude       ProductCategory = "saude"
	CategoryLivros      ProductCategory = "livros"
	CategoryOutros      ProductCategory = "outros"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryEletronicos, CategoryRoupas, CategoryAlimentos, CategoryCasa,
		CategoryEsportes, CategorySaude, CategoryLivros, CategoryOutros:
		return true
	}
	return false
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Merchant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotionalPrice,omitempty"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Images           []string         `json:"images,omitempty"`
	IsActive         bool             `json:"isActive"`
	Stock            int              `json:"stock"`
	Category         ProductCategory  `json:"category"`
	CategoryEntity   *Category        `json:"categoryEntity,omitempty"`
	CategoryID       string           `json:"categoryId,omitempty"`
	MerchantID       string           `json:"merchantId"`
	Merchant         Merchant         `json:"merchant"`
	Rating           float64          `json:"rating"`
	ReviewCount      int              `json:"reviewCount"`
	Tags             []string         `json:"tags,omitempty"`
	ViewCount        int              `json:"viewCount"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ProductFilters mirrors the backend's product query. Zero values are not sent.
type ProductFilters struct {
	Category   ProductCategory
	CategoryID string
	MerchantID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	InStock    *bool
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// ParseProductFilters reads filters from a query string.
func ParseProductFilters(q url.Values) (ProductFilters, error) {
	f := ProductFilters{
		Category:   ProductCategory(q.Get("category")),
		CategoryID: q.Get("categoryId"),
		MerchantID: q.Get("merchantId"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
	}
	var err error
	if f.MinPrice, err = optDecimal(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optDecimal(q, "maxPrice"); err != nil {
		return f, err
	}
	if v := q.Get("inStock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, invalid("inStock", "inStock deve ser true ou false")
		}
		f.InStock = &b
	}
	if f.Limit, err = optInt(q, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = optInt(q, "offset"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func (f ProductFilters) Validate() error {
	if f.Category != "" && !f.Category.Valid() {
		return invalid("category", "categoria inválida")
	}
	switch f.SortBy {
	case "", "price", "rating", "createdAt", "name":
	default:
		return invalid("sortBy", "sortBy inválido")
	}
	switch f.SortOrder {
	case "", "ASC", "DESC":
	default:
		return invalid("sortOrder", "sortOrder deve ser ASC ou DESC")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return invalid("minPrice", "minPrice maior que maxPrice")
	}
	return nil
}

// Values encodes the non-empty filters.
func (f ProductFilters) Values() url.Values {
	v := url.Values{}
	setIf(v, "category", string(f.Category))
	setIf(v, "categoryId", f.CategoryID)
	setIf(v, "merchantId", f.MerchantID)
	if f.MinPrice != nil {
		v.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", f.MaxPrice.String())
	}
	setIf(v, "search", f.Search)
	if f.InStock != nil {
		v.Set("inStock", strconv.FormatBool(*f.InStock))
	}
	setIf(v, "sortBy", f.SortBy)
	setIf(v, "sortOrder", f.SortOrder)
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

func setIf(v url.Values, k, s string) {
	if s != "" {
		v.Set(k, s)
	}
}

func optDecimal(q url.Values, k string) (*decimal.Decimal, error) {
	s := q.Get(k)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, invalid(k, k+" deve ser numérico")
	}
	return &d, nil
}

func optInt(q url.Values, k string) (int, error) {
	s := q.Get(k)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, invalid(k, k+" deve ser um inteiro não negativo")
	}
	return n, nil
}

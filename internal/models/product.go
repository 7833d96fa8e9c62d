package models

import "time"

// Product categories accepted by the store. Anything else is rejected at
// write time.
const (
	CategoryElectronics = "electronics"
	CategoryHome        = "home"
	CategoryFashion     = "fashion"
	CategoryAccessories = "accessories"
)

// Product represents a product in the store catalog.
type Product struct {
	ID               string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string            `json:"name" validate:"required,max=100"`
	Description      string            `json:"description" validate:"required,max=2000"`
	Price            float64           `json:"price" validate:"gte=0"`
	Category         string            `json:"category" validate:"required,oneof=electronics home fashion accessories"`
	Rating           float64           `json:"rating" validate:"gte=0,lte=5"`
	Image            string            `json:"image" validate:"required"`
	AdditionalImages []string          `json:"additionalImages" gorm:"serializer:json"`
	Specs            map[string]string `json:"specs" gorm:"serializer:json"`
	InStock          bool              `json:"inStock"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ProductInput carries the writable product fields of a create or update
// request. Pointer fields distinguish "absent" from a zero value so that
// updates can replace only the fields present in the body.
type ProductInput struct {
	Name             *string           `json:"name"`
	Description      *string           `json:"description"`
	Price            *float64          `json:"price"`
	Category         *string           `json:"category"`
	Rating           *float64          `json:"rating"`
	Image            *string           `json:"image"`
	AdditionalImages []string          `json:"additionalImages"`
	Specs            map[string]string `json:"specs"`
	InStock          *bool             `json:"inStock"`
}

// Apply replaces the product fields present in the input, leaving absent
// fields untouched.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.AdditionalImages != nil {
		p.AdditionalImages = in.AdditionalImages
	}
	if in.Specs != nil {
		p.Specs = in.Specs
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
}

package schema

import "strings"

type OrganizationFields struct {
	Name      string  `json:"name" validate:"min=1,max=200" msg:"min=Name is required;max=Name must be under 200 characters"`
	Subdomain string  `json:"subdomain" validate:"min=1,max=100,slug" msg:"min=Subdomain is required;max=Subdomain must be under 100 characters;slug=Subdomain can only contain lowercase letters, numbers, and hyphens"`
	LogoURL   *string `json:"logoUrl" validate:"omitempty,url,max=500" msg:"url=Enter a valid URL;max=Logo URL must be under 500 characters"`
	IsActive  *bool   `json:"isActive"`
}

func (f *OrganizationFields) normalize() {
	trim(&f.Name)
	f.Subdomain = strings.TrimSpace(f.Subdomain)
	trimPtr(&f.LogoURL)
}

type CreateOrganizationInput struct {
	OrganizationFields
}

// Normalize makes new organizations active unless told otherwise. Updates
// leave isActive nil so an omitted flag keeps the stored value.
func (in *CreateOrganizationInput) Normalize() {
	in.normalize()
	in.IsActive = defaultTrue(in.IsActive)
}

type UpdateOrganizationInput struct {
	ID string `json:"id" validate:"required,uuid"`
	OrganizationFields
}

func (in *UpdateOrganizationInput) Normalize() {
	trim(&in.ID)
	in.normalize()
}

type OrganizationQuery struct {
	Pagination
	IsActive *bool  `form:"isActive"`
	SortBy   string `form:"sortBy" validate:"oneof=name subdomain created_at updated_at"`
	SortDir  string `form:"sortDir" validate:"oneof=asc desc"`
}

func (q *OrganizationQuery) Normalize() {
	q.Pagination.normalize()
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
}

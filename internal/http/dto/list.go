package dto

import "basegraph.app/backoffice/internal/model"

// Pagination is flattened into every list response next to the items.
type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func paginationOf[T any](p *model.Page[T]) Pagination {
	return Pagination{Total: p.Total, Page: p.Page, PageSize: p.PageSize}
}

// items keeps empty pages as [] rather than null.
func items[T any](p *model.Page[T]) []T {
	if p.Items == nil {
		return []T{}
	}
	return p.Items
}

type UserListResponse struct {
	Users []model.Account `json:"users"`
	Pagination
}

func ToUserList(p *model.Page[model.Account]) UserListResponse {
	return UserListResponse{Users: items(p), Pagination: paginationOf(p)}
}

type OrganizationListResponse struct {
	Organizations []model.Organization `json:"organizations"`
	Pagination
}

func ToOrganizationList(p *model.Page[model.Organization]) OrganizationListResponse {
	return OrganizationListResponse{Organizations: items(p), Pagination: paginationOf(p)}
}

type NewsletterListResponse struct {
	Submissions []model.NewsletterSubmission `json:"submissions"`
	Pagination
}

func ToNewsletterList(p *model.Page[model.NewsletterSubmission]) NewsletterListResponse {
	return NewsletterListResponse{Submissions: items(p), Pagination: paginationOf(p)}
}

type ContactListResponse struct {
	Submissions []model.ContactSubmission `json:"submissions"`
	Pagination
}

func ToContactList(p *model.Page[model.ContactSubmission]) ContactListResponse {
	return ContactListResponse{Submissions: items(p), Pagination: paginationOf(p)}
}

type LandingPageListResponse struct {
	LandingPages []model.LandingPage `json:"landingPages"`
	Pagination
}

func ToLandingPageList(p *model.Page[model.LandingPage]) LandingPageListResponse {
	return LandingPageListResponse{LandingPages: items(p), Pagination: paginationOf(p)}
}

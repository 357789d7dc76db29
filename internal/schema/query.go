package schema

import "time"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int     `form:"page" validate:"min=1"`
	PageSize int     `form:"pageSize" validate:"min=1,max=100"`
	Search   *string `form:"search" validate:"omitempty,max=120"`
}

func (p *Pagination) normalize() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	trimPtr(&p.Search)
}

func defaultTrue(b *bool) *bool {
	if b != nil {
		return b
	}
	active := true
	return &active
}

// DateRange filters on a submission timestamp. Both bounds are inclusive.
type DateRange struct {
	StartDate *string `form:"startDate" validate:"omitempty,date"`
	EndDate   *string `form:"endDate" validate:"omitempty,date"`
}

// Bounds returns the parsed range. A bare end date covers that whole day.
func (d DateRange) Bounds() (from, to *time.Time) {
	if d.StartDate != nil {
		if t, err := ParseDate(*d.StartDate); err == nil {
			from = &t
		}
	}
	if d.EndDate != nil {
		if t, err := ParseDate(*d.EndDate); err == nil {
			if datePattern.MatchString(*d.EndDate) {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			to = &t
		}
	}
	return from, to
}

func (d *DateRange) normalize() {
	trimPtr(&d.StartDate)
	trimPtr(&d.EndDate)
}

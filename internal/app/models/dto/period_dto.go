package dto

// PeriodRequest carries service-term creation data, dates in "2006-01-02" layout
type PeriodRequest struct {
	Name      string `json:"name" binding:"required,max=100" example:"SEP-MAR 2025"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

package dto

// ParkRequest carries park creation/update data
type ParkRequest struct {
	ParkName     string `json:"parkName" binding:"required,max=255" example:"Parque Metropolitano"`
	Abbreviation string `json:"abbreviation" binding:"required,max=50" example:"PMET"`
}

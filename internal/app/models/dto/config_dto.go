package dto

// PhotoSizeLimitRequest updates the attendance photo size limit
type PhotoSizeLimitRequest struct {
	SizeMB int `json:"sizeMb" binding:"required,min=1,max=100"`
}

// PhotoSizeLimitResponse reports the current attendance photo size limit
type PhotoSizeLimitResponse struct {
	SizeMB int `json:"sizeMb"`
}

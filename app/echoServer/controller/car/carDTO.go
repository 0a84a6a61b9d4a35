package car

type CreateCarReq struct {
	Make        string   `json:"make" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Year        int      `json:"year" validate:"required,gt=0"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	PricePerDay float64  `json:"pricePerDay" validate:"required,gt=0"`
	Available   *bool    `json:"available"`
	Images      []string `json:"images"`
}

type UpdateCarReq struct {
	Make        *string  `json:"make"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
	PricePerDay *float64 `json:"pricePerDay"`
	Available   *bool    `json:"available"`
	Images      []string `json:"images"`
}

package dto

type SitterRequest struct {
	Bio          string `json:"bio"`
	ServiceTypes string `json:"service_types"`
	HourlyRate   int64  `json:"hourly_rate"`
}

type PetRequest struct {
	PetID    string `param:"pet_id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	Age      int    `json:"age"`
	Notes    string `json:"notes"`
	ImageURL string `json:"image_url"`
}

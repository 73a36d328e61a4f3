package dto

type FieldTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UnitResponse struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

type UnitCategoryResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

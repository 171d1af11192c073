package dto

type SkillResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	TargetLevel int    `json:"target_level"`
}

type SkillCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

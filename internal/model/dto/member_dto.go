package dto

type CreateMemberRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Nickname    *string `json:"nickname"`
	Description *string `json:"description"`
}

type UpdateMemberRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Nickname    *string `json:"nickname"`
	Description *string `json:"description"`
}

type CreateMembershipRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Days        int     `json:"days" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=time training"`
	Trainings   *int    `json:"trainings"`
}

type UpdateMembershipRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Days        *int    `json:"days"`
	Type        *string `json:"type"`
	Trainings   *int    `json:"trainings"`
}

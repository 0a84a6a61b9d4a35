package user

type UpdateProfileReq struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6"`
}

type AdminUpdateUserReq struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `json:"role" validate:"omitempty,oneof=customer admin"`
}

package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeDTO struct {
	ID           uint64   `json:"id"`
	Fio          string   `json:"fio"`
	Email        string   `json:"email"`
	RoleName     string   `json:"role_name"`
	DepartmentID *uint64  `json:"department_id,omitempty"`
	Permissions  []string `json:"permissions"`
}

package dto

type CreateUserDTO struct {
	Fio          string  `json:"fio" validate:"required,max=255"`
	Email        string  `json:"email" validate:"required,email"`
	PhoneNumber  string  `json:"phone_number" validate:"omitempty,e164_TJ"`
	Password     string  `json:"password" validate:"required,min=6"`
	RoleID       uint64  `json:"role_id" validate:"required,gt=0"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserDTO struct {
	Fio          *string `json:"fio,omitempty" validate:"omitempty,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber  *string `json:"phone_number,omitempty" validate:"omitempty,e164_TJ"`
	RoleID       *uint64 `json:"role_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type UserDTO struct {
	ID           uint64  `json:"id"`
	Fio          string  `json:"fio"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	RoleID       uint64  `json:"role_id"`
	RoleName     string  `json:"role_name"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ShortUserDTO struct {
	ID    uint64 `json:"id"`
	Fio   string `json:"fio"`
	Email string `json:"email"`
}

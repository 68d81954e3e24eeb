package user

// CreateUserDTO needs a password; the backend hashes it.
type CreateUserDTO struct {
	Matricule string `json:"matricule" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUserDTO keeps the current password when Password is empty.
type UpdateUserDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

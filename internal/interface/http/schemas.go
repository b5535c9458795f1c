package handlers

// Route schemas. Field order is the order in which errors are reported.

type signUpSchema struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type loginSchema struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type changePasswordSchema struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required,strongpwd"`
	NewPassword     string `json:"newPassword" validate:"required,strongpwd"`
}

type createUniversitySchema struct {
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Country       string   `json:"country" validate:"required,min=3,max=50"`
	StateProvince *string  `json:"stateProvince" validate:"omitnil,min=2,max=25"`
	Domains       []string `json:"domains" validate:"required,dive,min=5,max=100"`
	WebPages      []string `json:"webPages" validate:"required,dive,min=5,max=100,weburl"`
	AlphaTwoCode  string   `json:"alphaTwoCode" validate:"required,len=2"`
}

type listUniversitiesSchema struct {
	Page    string `json:"page" validate:"omitempty,number"`
	Country string `json:"country" validate:"omitempty,max=50"`
}

type universityIDSchema struct {
	UniversityID string `json:"universityId" validate:"required"`
}

type updateUniversitySchema struct {
	UniversityID string   `json:"universityId" validate:"required"`
	Name         string   `json:"name" validate:"required,min=5,max=100"`
	Domains      []string `json:"domains" validate:"required,dive,min=5,max=100"`
	WebPages     []string `json:"webPages" validate:"required,dive,min=5,max=100,weburl"`
}

type searchUniversitiesSchema struct {
	Q    string `json:"q" validate:"required,min=2,max=100"`
	Size string `json:"size" validate:"omitempty,number"`
}

package handler

type registerRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"      validate:"required"`
	Username   string `json:"username"   validate:"required"`
	Password   string `json:"password"   validate:"required"`
	City       string `json:"city"`
	Region     string `json:"region"`
	Expertise  string `json:"expertise"`
	WorkRegion string `json:"workRegion"`
	Role       string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Role     string `json:"role"`
}

package user

type credentials struct {
	Login    string `json:"login" minLength:"3" maxLength:"32" example:"alice"`
	Password string `json:"password" minLength:"8" example:"passw0rd123"`
}

type registerInput struct {
	Body credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	UserID string `json:"userId,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type loginInput struct {
	Body credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type logoutInput struct {
	Authorization string `header:"Authorization"`
}

type logoutOutput struct {
	Body LogoutResponse
}

type LogoutResponse struct {
	Status string `json:"status"`
}

type meInput struct{}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
}

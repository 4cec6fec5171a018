package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT para los endpoints de administración.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}

// RefresherStateDTO respuesta de las operaciones de administración del refresco.
type RefresherStateDTO struct {
	State   string `json:"state"`
	Version uint64 `json:"version"`
}

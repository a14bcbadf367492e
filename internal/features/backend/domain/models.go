package domain

// Credentials holds the login pair exchanged for a bearer token.
// Values are transient and must never be logged or persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the response of a successful login
type AuthResult struct {
	Token       string       `json:"token"`
	UserDetails *UserDetails `json:"userDetails,omitempty"`
	LastUsage   string       `json:"lastUsage,omitempty"`
}

// UserDetails describes the authenticated user
type UserDetails struct {
	Name            string   `json:"nombre"`
	Username        string   `json:"username"`
	Company         string   `json:"empresa"`
	CompanyID       string   `json:"idEmpresa"`
	RFC             string   `json:"rfc"`
	Role            string   `json:"rol"`
	MaxTestAttempts int      `json:"maximoIntentosPruebas"`
	IPAllowlist     []string `json:"ip"`
}

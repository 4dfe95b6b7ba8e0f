package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type DependencyHealth struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type DependenciesHealthResponse struct {
	Status       string             `json:"status"`
	Service      string             `json:"service"`
	Dependencies []DependencyHealth `json:"dependencies"`
}

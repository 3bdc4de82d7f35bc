package errorhandler

// User is a user record returned by the API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateUserRequest creates a new user.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Report is a generated report.
type Report struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Status     string            `json:"status"`
	Parameters map[string]string `json:"parameters,omitempty"`
	ResultURL  string            `json:"result_url,omitempty"`
}

// RunReportRequest starts report generation.
type RunReportRequest struct {
	Title      string            `json:"title"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

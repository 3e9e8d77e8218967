package domain

// AccountStatus describes the credentials in use.
type AccountStatus struct {
	Login     string
	RateLimit *RateLimit
}

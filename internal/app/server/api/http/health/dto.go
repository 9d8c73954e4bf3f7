package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status    string `json:"status" example:"OK" doc:"Health status of the service"`
	Timestamp string `json:"timestamp" example:"2024-05-01T08:00:00Z" doc:"Server time, RFC 3339"`
}

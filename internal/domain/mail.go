package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AvailabilitySubmittedMailData struct {
	FullName    string   `json:"fullName"`
	Shifts      []string `json:"shifts"`
	SubmittedAt string   `json:"submittedAt"`
}

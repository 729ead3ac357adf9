package domain

const MailTypeVerifyEmail = "verify_email"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type VerifyEmailMailData struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	VerifyURL string `json:"verifyURL"`
}

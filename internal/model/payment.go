package model

// PaymentIntent - часть платёжного намерения шлюза, отдаваемая наружу.
// Amount в минимальных единицах валюты (центах).
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

// SendOrderNotificationEmail alerts the boutique that a new COD order landed.
// Customers are reached by phone, not email, so the mail goes to the store.
func (s *EmailService) SendOrderNotificationEmail(toEmail, customerName, orderNumber string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Nouvelle commande %s", orderNumber))

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .order-box { background-color: #f8f7ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 style="color: #333;">Nouvelle commande reçue</h2>
        <p>Une nouvelle commande vient d'être passée sur la boutique.</p>

        <div class="order-box">
            <p><strong>Numéro de commande :</strong> %s</p>
            <p><strong>Client :</strong> %s</p>
            <p><strong>Montant total :</strong> %s DA (paiement à la livraison)</p>
        </div>

        <p>Pensez à contacter le client par téléphone pour confirmer la commande.</p>

        <div class="footer">
            <p>Ceci est un email automatique, merci de ne pas y répondre.</p>
        </div>
    </div>
</body>
</html>
	`, orderNumber, customerName, formatDinars(total))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// formatDinars renders 12500 as "12 500", the usual French digit grouping.
func formatDinars(amount float64) string {
	str := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart := str
	fracPart := ""
	for i := range str {
		if str[i] == '.' {
			intPart = str[:i]
			fracPart = str[i:]
			break
		}
	}

	n := len(intPart)
	if n <= 3 {
		return intPart + fracPart
	}

	result := ""
	for i, digit := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			result += " "
		}
		result += string(digit)
	}
	return result + fracPart
}

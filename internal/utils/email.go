package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"shopeasy_back_end/internal/models"
)

// SendOrderConfirmation envoie le récapitulatif de commande. Best-effort :
// le checkout n'échoue jamais à cause du mail, l'appelant se contente de
// logger l'erreur.
func SendOrderConfirmation(to string, order models.Order) error {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return fmt.Errorf("SMTP_HOST non configuré")
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@shopeasy.dev"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de commande %s", order.ID.Hex()))
	msg.SetBodyString(mail.TypeTextHTML, GenerateOrderConfirmationHTML(order))

	client, err := mail.NewClient(smtpHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de la confirmation de commande à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Merci pour votre commande !</h2>
	<p>Commande <b>%s</b> du %s</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Produit</th><th>Qté</th><th>Prix</th><th>Sous-total</th></tr>
		%s
	</table>
	<h3>Total : %.2f€</h3>
	<p>Livraison : %s, %s %s, %s</p>
</body>
</html>`,
		order.ID.Hex(),
		order.CreatedAt.Format("02/01/2006 15:04"),
		itemsHTML,
		order.TotalAmount,
		order.ShippingAddress.Street,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.City,
		order.ShippingAddress.Country,
	)
}

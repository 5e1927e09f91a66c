package email

import (
	"fmt"
	"log"

	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/pricing"
)

const sender = "no-reply@alternusgallery.com"
const senderName = "Alternus Gallery"

func SendOrderConfirmationEmail(order models.Order) {
	lines := ""
	for _, l := range order.Lines {
		lines += fmt.Sprintf(`<tr><td>%v</td><td>%v frame</td><td>x%d</td><td style="text-align:right;">%v</td></tr>`,
			l.Title, l.Frame, l.Quantity, pricing.FormatPrice(l.LineTotal, "en"))
	}

	mail := Composer{
		To:         order.Customer.Email,
		ToName:     order.Customer.Name,
		Sender:     sender,
		SenderName: senderName,
		Subject:    fmt.Sprintf("Your Alternus Gallery order %v", order.OrderNumber),
		Body: fmt.Sprintf(`<body style="font-family: Georgia, serif; font-size: 14px;"><p>Dear %v,</p><p>Thank you for your order at Alternus Gallery. Your order number is <strong>%v</strong> — keep it to track your purchase.</p><table style="width:100%%;border-collapse:collapse;">%v</table><p>Subtotal: %v<br>Shipping: %v<br>VAT: %v<br><strong>Total: %v</strong></p><p>We will let you know as soon as your artwork ships.</p><p>Warm regards,</p><p>The Alternus Gallery Team</p></body>`,
			order.Customer.Name, order.OrderNumber, lines,
			pricing.FormatPrice(order.Totals.Subtotal, "en"),
			pricing.FormatPrice(order.Totals.Shipping, "en"),
			pricing.FormatPrice(order.Totals.Tax, "en"),
			pricing.FormatPrice(order.Totals.Total, "en")),
	}

	err := SendMail(mail)
	if err != nil {
		log.Println(err)
	} else {
		log.Printf("order confirmation email sent to %v for order %v", mail.To, order.OrderNumber)
	}
}

func SendOrderShippedEmail(order models.Order) {
	mail := Composer{
		To:         order.Customer.Email,
		ToName:     order.Customer.Name,
		Sender:     sender,
		SenderName: senderName,
		Subject:    fmt.Sprintf("Your order %v is on its way", order.OrderNumber),
		Body: fmt.Sprintf(`<body style="font-family: Georgia, serif; font-size: 14px;"><p>Dear %v,</p><p>Good news — your order <strong>%v</strong> has shipped and is on its way to %v.</p><p>Warm regards,</p><p>The Alternus Gallery Team</p></body>`,
			order.Customer.Name, order.OrderNumber, order.Customer.City),
	}

	err := SendMail(mail)
	if err != nil {
		log.Println(err)
	} else {
		log.Printf("order shipped email sent to %v for order %v", mail.To, order.OrderNumber)
	}
}

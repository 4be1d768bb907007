package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

func smtpConfig() (addr, from, user string, auth smtp.Auth, ok bool) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user = os.Getenv("SMTP_USERNAME")
	pass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if user == "" || pass == "" || host == "" || port == "" {
		return "", "", "", nil, false
	}
	if fromName == "" {
		fromName = "PGStay Chandigarh"
	}

	addr = fmt.Sprintf("%s:%s", host, port)
	from = fmt.Sprintf("%s <%s>", fromName, user)
	auth = smtp.PlainAuth("", user, pass, host)
	return addr, from, user, auth, true
}

func sanitizeHeader(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
}

func buildMultipart(from, to, subject, plainBody, htmlBody string) []byte {
	boundary := "----=_PGSTAY_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// SendBookingConfirmationEmail tells the guest their booking went through and
// what remains to pay. Falls back to a mock log line when SMTP is not
// configured.
func SendBookingConfirmationEmail(recipientEmail, name, referenceCode, propertyName string, paidNow, dueLater int, moveIn time.Time) error {
	addr, from, _, auth, ok := smtpConfig()
	if !ok {
		log.Printf("[MOCK EMAIL] booking confirmation to:%s ref:%s paid:%d due:%d", recipientEmail, referenceCode, paidNow, dueLater)
		return nil
	}

	name = sanitizeHeader(name)
	referenceCode = sanitizeHeader(referenceCode)
	propertyName = sanitizeHeader(propertyName)

	subject := fmt.Sprintf("Booking %s confirmed - %s", referenceCode, propertyName)

	plainBody := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking %s at %s is confirmed.\n"+
			"Move-in date: %s\n"+
			"Paid now: ₹%d\n"+
			"Balance due: ₹%d\n\n"+
			"See you soon!\n",
		name, referenceCode, propertyName, moveIn.Format("02 Jan 2006"), paidNow, dueLater,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmed</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.amount { font-size:20px; font-weight:bold; color:#0b74ff; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking confirmed</h2>
    <p>Hi %s,</p>
    <p>Your booking <strong>%s</strong> at <strong>%s</strong> is confirmed.</p>
    <p>Move-in date: %s</p>
    <p>Paid now: <span class="amount">₹%d</span></p>
    <p>Balance due: ₹%d</p>
  </div>
</div>
</body>
</html>`,
		name, referenceCode, propertyName, moveIn.Format("02 Jan 2006"), paidNow, dueLater,
	)

	msg := buildMultipart(from, recipientEmail, subject, plainBody, htmlBody)
	if err := smtp.SendMail(addr, auth, os.Getenv("SMTP_USERNAME"), []string{recipientEmail}, msg); err != nil {
		log.Printf("Failed to send booking email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Booking confirmation sent to %s", recipientEmail)
	return nil
}

// SendVisitNotificationEmail forwards a visit enquiry to the office mailbox
// (VISIT_NOTIFY_EMAIL, falling back to the SMTP account itself).
func SendVisitNotificationEmail(name, email, phone, propertyName, message string, preferredDate *time.Time) error {
	addr, from, user, auth, ok := smtpConfig()
	if !ok {
		log.Printf("[MOCK EMAIL] visit enquiry from:%s property:%s", email, propertyName)
		return nil
	}

	recipient := strings.TrimSpace(os.Getenv("VISIT_NOTIFY_EMAIL"))
	if recipient == "" {
		recipient = user
	}

	name = sanitizeHeader(name)
	propertyName = sanitizeHeader(propertyName)

	when := "not specified"
	if preferredDate != nil {
		when = preferredDate.Format("02 Jan 2006")
	}
	if propertyName == "" {
		propertyName = "general enquiry"
	}

	subject := fmt.Sprintf("Visit request: %s (%s)", name, propertyName)

	plainBody := fmt.Sprintf(
		"New visit request.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nProperty: %s\nPreferred date: %s\n\nMessage:\n%s\n",
		name, email, phone, propertyName, when, message,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h3>New visit request</h3>
  <p><strong>Name:</strong> %s<br>
  <strong>Email:</strong> %s<br>
  <strong>Phone:</strong> %s<br>
  <strong>Property:</strong> %s<br>
  <strong>Preferred date:</strong> %s</p>
  <p>%s</p>
</body>
</html>`,
		name, email, phone, propertyName, when, message,
	)

	msg := buildMultipart(from, recipient, subject, plainBody, htmlBody)
	if err := smtp.SendMail(addr, auth, user, []string{recipient}, msg); err != nil {
		log.Printf("Failed to send visit notification: %v", err)
		return err
	}
	return nil
}

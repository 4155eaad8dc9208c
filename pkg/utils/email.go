package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "HomeSpace"
	baseURL       = os.Getenv("BASE_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #4F46E5; margin: 0;">HomeSpace</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2025 HomeSpace. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "HomeSpace-Mailer"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

func SendBookingRequestedEmail(ownerEmail, hostelName string, roomID, studentID uint, startDate, endDate time.Time) error {
	subject := "New Booking Request - HomeSpace"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Booking Request</h1>
					<p>Hello,</p>
					<p>A student (ID: <strong>%d</strong>) has requested to book room <strong>%d</strong> in your hostel <strong>%s</strong>.</p>
					<p><b>Duration:</b> %s → %s</p>
					<p>Please log in to your HomeSpace account to approve or reject this request.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #4F46E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Login to HomeSpace</a>
					</div>
					<p>Best regards,<br>The HomeSpace Team</p>
				</div>`+emailFooter,
		studentID, roomID, hostelName,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), baseURL)

	return sendEmail([]string{ownerEmail}, subject, body)
}

func SendBookingDecisionEmail(studentEmail, hostelName string, roomID uint, status string) error {
	subject := fmt.Sprintf("Booking %s - HomeSpace", status)
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking %s</h1>
					<p>Hello,</p>
					<p>Your booking for room <strong>%d</strong> in hostel <strong>%s</strong> has been <strong>%s</strong>.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #4F46E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Bookings</a>
					</div>
					<p>Best regards,<br>The HomeSpace Team</p>
				</div>`+emailFooter,
		status, roomID, hostelName, strings.ToLower(status), baseURL)

	return sendEmail([]string{studentEmail}, subject, body)
}

func SendVisitRequestedEmail(ownerEmail, hostelName, studentName string, visitDate time.Time) error {
	subject := "New Hostel Visit Request - HomeSpace"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Visit Request</h1>
					<p>Hello,</p>
					<p><strong>%s</strong> would like to visit your hostel <strong>%s</strong> on <strong>%s</strong>.</p>
					<p>Please log in to approve or reject this visit.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #4F46E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Login to HomeSpace</a>
					</div>
					<p>Best regards,<br>The HomeSpace Team</p>
				</div>`+emailFooter,
		studentName, hostelName, visitDate.Format("2006-01-02"), baseURL)

	return sendEmail([]string{ownerEmail}, subject, body)
}

func SendVisitDecisionEmail(studentEmail, hostelName string, visitDate time.Time, status string) error {
	subject := fmt.Sprintf("Visit %s - HomeSpace", status)
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Visit %s</h1>
					<p>Hello,</p>
					<p>Your visit request for hostel <strong>%s</strong> scheduled on <strong>%s</strong> has been <strong>%s</strong>.</p>
					<p>Best regards,<br>The HomeSpace Team</p>
				</div>`+emailFooter,
		status, hostelName, visitDate.Format("2006-01-02"), strings.ToLower(status))

	return sendEmail([]string{studentEmail}, subject, body)
}

func SendPasswordResetEmail(email, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s&email=%s", baseURL, token, email)

	subject := "Password Reset - HomeSpace"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Reset Your Password</h1>
					<p>Click the button below to reset your HomeSpace password:</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Reset Password</a>
					</div>
					<p style="font-size: 14px; color: #666;">This link will expire in <strong>1 hour</strong> and can only be used <strong>once</strong>.</p>
					<p style="font-size: 12px; color: #999;">If you didn't request this, safely ignore this email.</p>
				</div>`+emailFooter,
		resetLink)

	return sendEmail([]string{email}, subject, body)
}

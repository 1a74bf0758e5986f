package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

const otpTemplate = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .otp-box { background: white; border: 2px dashed #667eea; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px; }
    .otp-code { font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 8px; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>SportsConnect</h1>
      <p>Verification Code</p>
    </div>
    <div class="content">
      <p>Hi <strong>{{ .Name | trim }}</strong>,</p>
      <p>Thank you for signing up with SportsConnect! Use the verification code below to complete your registration:</p>
      <div class="otp-box">
        <div class="otp-code">{{ .OTP }}</div>
      </div>
      <p><strong>This code will expire in {{ .TTLMinutes }} minutes.</strong></p>
      <p>If you didn't request this code, please ignore this email.</p>
      <div class="footer">
        <p>&copy; {{ now | date "2006" }} SportsConnect. All rights reserved.</p>
      </div>
    </div>
  </div>
</body>
</html>`

const welcomeTemplate = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Welcome to SportsConnect!</h1>
    </div>
    <div class="content">
      <p>Hi <strong>{{ .Name | trim }}</strong>,</p>
      <p>Welcome to the SportsConnect community!</p>
      <p>You're now part of a vibrant community of sports enthusiasts. Start connecting with fellow athletes, discover local sports events, and build your sports network!</p>
      <p>Happy connecting!</p>
      <p><strong>The SportsConnect Team</strong></p>
    </div>
  </div>
</body>
</html>`

var templates = template.Must(
	template.New("otp").Funcs(sprig.HtmlFuncMap()).Parse(otpTemplate),
)

func init() {
	template.Must(templates.New("welcome").Parse(welcomeTemplate))
}

// RenderOTP builds the verification-code email for the given recipient.
func RenderOTP(name, email, otp string, ttlMinutes int) (Message, error) {
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Name":       name,
		"OTP":        otp,
		"TTLMinutes": ttlMinutes,
	}
	if err := templates.ExecuteTemplate(&buf, "otp", data); err != nil {
		return Message{}, fmt.Errorf("failed to render otp template: %w", err)
	}
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "Your SportsConnect Verification Code",
		Text:    fmt.Sprintf("Hi %s, your SportsConnect verification code is %s. It expires in %d minutes.", name, otp, ttlMinutes),
		HTML:    buf.String(),
	}, nil
}

// RenderWelcome builds the post-signup welcome email.
func RenderWelcome(name, email string) (Message, error) {
	var buf bytes.Buffer
	data := map[string]interface{}{"Name": name}
	if err := templates.ExecuteTemplate(&buf, "welcome", data); err != nil {
		return Message{}, fmt.Errorf("failed to render welcome template: %w", err)
	}
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "Welcome to SportsConnect!",
		Text:    fmt.Sprintf("Hi %s, welcome to the SportsConnect community!", name),
		HTML:    buf.String(),
	}, nil
}

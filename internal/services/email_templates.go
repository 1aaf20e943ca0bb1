package services

import "strings"

const welcomeSubject = "Welcome to our platform"

const welcomeTemplate = `<p>Hello {{name}}, your account is successfully created on our platform using Email ID: {{email}}</p>`

const verifyOtpSubject = "Account Verification OTP"

const verifyOtpTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Verify your email</h2>
  <p>You are trying to verify the account registered to {{email}}.</p>
  <p>Use the code below to complete the verification. It expires in 10 minutes.</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{otp}}</p>
</div>`

const resetOtpSubject = "Password Reset OTP"

const resetOtpTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>A password reset was requested for {{email}}.</p>
  <p>Use the code below to set a new password. It expires in 15 minutes.</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{otp}}</p>
  <p>If you did not request this, you can ignore this email.</p>
</div>`

func renderTemplate(tmpl string, repl map[string]string) string {
	out := tmpl
	for key, val := range repl {
		out = strings.ReplaceAll(out, "{{"+key+"}}", val)
	}
	return out
}

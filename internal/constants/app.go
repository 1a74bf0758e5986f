package constants

// Application Information
const (
	AppName    = "SportsConnect API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// OTP store key prefix. One key per normalized email address.
const OTPKeyPrefix = "otp:"

// AdminSubject is the token subject for the static-credential operator.
// It never collides with user ids, which are numeric.
const AdminSubject = "admin"

// Token scopes carried in the JWT scope claim.
const (
	ScopeUser  = "user"
	ScopeAdmin = "admin"
)

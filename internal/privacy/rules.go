package privacy

import "regexp"

// Type IDs for structured detection rules. The keyword scanner reports
// everything under TypeSensitiveKeyword.
const (
	TypeEmail              = "email"
	TypeSSN                = "ssn"
	TypeCreditCard         = "creditCard"
	TypePhone              = "phone"
	TypePhoneIndia         = "phoneIndia"
	TypeIPAddress          = "ipAddress"
	TypePassport           = "passport"
	TypeDriverLicense      = "driverLicense"
	TypeTaxID              = "taxId"
	TypeMedicalRecord      = "medicalRecord"
	TypeDateOfBirth        = "dateOfBirth"
	TypeAadhaar            = "aadhaar"
	TypeAadhaarStandalone  = "aadhaarStandalone"
	TypePAN                = "pan"
	TypePANStandalone      = "panStandalone"
	TypeVoterID            = "voterId"
	TypeIFSC               = "ifsc"
	TypeGSTIN              = "gstin"
	TypeUPI                = "upi"
	TypeBankAccount        = "bankAccount"
	TypeAWSAccessKey       = "awsAccessKey"
	TypeAWSSecretKey       = "awsSecretKey"
	TypeGoogleAPIKey       = "googleApiKey"
	TypeGitHubToken        = "githubToken"
	TypeSlackToken         = "slackToken"
	TypeStripeKey          = "stripeKey"
	TypeAnthropicKey       = "anthropicKey"
	TypeOpenAIKey          = "openaiKey"
	TypeJWT                = "jwt"
	TypePrivateKey         = "privateKey"
	TypeSSHKey             = "sshKey"
	TypeDBConnectionString = "dbConnectionString"
	TypeGenericAPIKey      = "apiKeyGeneric"
	TypePassword           = "password"
	TypeSensitiveKeyword   = "sensitive_keyword"
)

// defaultRules returns the structured detection registry. Slice order is
// the scan priority order: email is always scanned first as a dedicated
// pre-pass so that numeric fragments inside an address can never be
// claimed by a later rule. Credential and secret rules come next, ahead
// of the PII digit rules — tokens embed long digit runs, and a generic
// phone or account rule scanned earlier would claim those spans and
// shadow the more specific credential type. Generic digit rules
// (bankAccount) sit at the very end so that more specific categories win
// overlapping spans.
func defaultRules() []DetectionRule {
	return []DetectionRule{
		{
			TypeID:     TypeEmail,
			Pattern:    regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the email address or replace it with a role alias before sharing.",
		},
		{
			TypeID:     TypeAWSAccessKey,
			Pattern:    regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this AWS key immediately and rotate credentials.",
		},
		{
			TypeID:     TypeAWSSecretKey,
			Pattern:    regexp.MustCompile(`(?i)\baws[a-z_ ]{0,20}(?:secret|key)[a-z_ ]{0,10}[:=]\s*["']?[0-9a-z/+]{40}["']?`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this AWS secret immediately and rotate credentials.",
		},
		{
			TypeID:     TypeGoogleAPIKey,
			Pattern:    regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this Google API key and issue a new one.",
		},
		{
			TypeID:     TypeGitHubToken,
			Pattern:    regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,255}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this GitHub token in your account settings.",
		},
		{
			TypeID:     TypeSlackToken,
			Pattern:    regexp.MustCompile(`\bxox[baprs]-[0-9A-Za-z\-]{10,}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this Slack token in the workspace admin console.",
		},
		{
			TypeID:     TypeStripeKey,
			Pattern:    regexp.MustCompile(`\b[sr]k_(?:live|test)_[0-9a-zA-Z]{24,}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Roll this Stripe key in the dashboard; live keys grant payment access.",
		},
		{
			TypeID:     TypeAnthropicKey,
			Pattern:    regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_\-]{20,}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this Anthropic API key and generate a new one.",
		},
		{
			TypeID:     TypeOpenAIKey,
			Pattern:    regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{20,}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Revoke this OpenAI API key and generate a new one.",
		},
		{
			TypeID:     TypeJWT,
			Pattern:    regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the JWT; tokens grant access to whoever holds them.",
		},
		{
			TypeID:     TypePrivateKey,
			Pattern:    regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`),
			Severity:   SeverityHigh,
			Suggestion: "Never paste private keys. Treat this key as compromised and rotate it.",
		},
		{
			TypeID:     TypeSSHKey,
			Pattern:    regexp.MustCompile(`\bssh-(?:rsa|ed25519|dss) [A-Za-z0-9+/=]{40,}`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the SSH key material before sharing.",
		},
		{
			TypeID:     TypeDBConnectionString,
			Pattern:    regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqps?)://[^\s:@]+:[^\s@]+@[^\s]+`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the connection string; it embeds database credentials.",
		},
		{
			TypeID:     TypeGenericAPIKey,
			Pattern:    regexp.MustCompile(`(?i)\b(?:api[_\-]?key|apikey|access[_\-]?token|auth[_\-]?token)["' ]*[:=]["' ]*[A-Za-z0-9_\-]{16,}`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the API key value; reference the credential by name instead.",
		},
		{
			TypeID:     TypePassword,
			Pattern:    regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[:=]\s*\S{6,}`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the password and rotate it if it is a real credential.",
		},
		{
			TypeID:     TypeSSN,
			Pattern:    regexp.MustCompile(`\b(?:\d{3}-\d{2}-\d{4}|\d{4}-\d{4}|\d{9})\b`),
			Severity:   SeverityHigh,
			Suggestion: "Never include Social Security numbers in prompts. Refer to the person another way.",
		},
		{
			TypeID:     TypeCreditCard,
			Pattern:    regexp.MustCompile(`\b\d{4}[ \-]?\d{4}[ \-]?\d{4}[ \-]?\d{4}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the card number. Use a test number such as 4242... if you need a placeholder.",
		},
		{
			// No leading \b on the +91 branch: a word boundary cannot sit
			// between whitespace and "+", so it would make the branch
			// unmatchable.
			TypeID:     TypePhoneIndia,
			Pattern:    regexp.MustCompile(`(?:\+91[ \-]?|\b0)[6-9]\d{9}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the mobile number or substitute a fictitious one.",
		},
		{
			TypeID:     TypePhone,
			Pattern:    regexp.MustCompile(`\b(?:\+?\d{1,3}[ .\-]?)?\(?\d{3}\)?[ .\-]?\d{3}[ .\-]?\d{4}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the phone number or substitute a fictitious one.",
		},
		{
			TypeID:     TypeIPAddress,
			Pattern:    regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			Severity:   SeverityLow,
			Suggestion: "Replace internal IP addresses with placeholders like 10.0.0.x.",
		},
		{
			TypeID:     TypePassport,
			Pattern:    regexp.MustCompile(`\b[A-Z][0-9]{7,8}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the passport number; describe the document without its identifier.",
		},
		{
			TypeID:     TypeDriverLicense,
			Pattern:    regexp.MustCompile(`\b[A-Z]{1,2}[0-9]{6,13}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the license number; it is not needed for most questions.",
		},
		{
			TypeID:     TypeTaxID,
			Pattern:    regexp.MustCompile(`\b\d{2}-\d{7}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the tax identification number before sharing.",
		},
		{
			TypeID:     TypeMedicalRecord,
			Pattern:    regexp.MustCompile(`(?i)\b(?:mrn|medical record(?: number| no\.?)?)[ #:\-]*\d{5,12}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the medical record number; health identifiers require extra care.",
		},
		{
			TypeID:     TypeDateOfBirth,
			Pattern:    regexp.MustCompile(`(?i)\b(?:dob|date of birth|born(?: on)?)[ :\-]*\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the date of birth or replace it with an approximate age.",
		},
		{
			TypeID:     TypeAadhaar,
			Pattern:    regexp.MustCompile(`\b[2-9]\d{3}[ \-]\d{4}[ \-]\d{4}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Never share Aadhaar numbers. Remove it entirely.",
		},
		{
			TypeID:     TypeAadhaarStandalone,
			Pattern:    regexp.MustCompile(`\b[2-9]\d{11}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Never share Aadhaar numbers. Remove it entirely.",
		},
		{
			TypeID:     TypePAN,
			Pattern:    regexp.MustCompile(`(?i)\b(?:pan|permanent account number)[ #:\-]*[a-z]{5}[0-9]{4}[a-z]\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the PAN; tax identifiers should never appear in prompts.",
		},
		{
			TypeID:     TypePANStandalone,
			Pattern:    regexp.MustCompile(`\b[A-Za-z]{5}[0-9]{4}[A-Za-z]\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the PAN; tax identifiers should never appear in prompts.",
		},
		{
			TypeID:     TypeVoterID,
			Pattern:    regexp.MustCompile(`\b[A-Za-z]{3}[0-9]{7}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the voter ID number before sharing.",
		},
		{
			TypeID:     TypeIFSC,
			Pattern:    regexp.MustCompile(`\b[A-Za-z]{4}0[A-Za-z0-9]{6}\b`),
			Severity:   SeverityLow,
			Suggestion: "Remove the IFSC code unless the bank branch is genuinely needed.",
		},
		{
			TypeID:     TypeGSTIN,
			Pattern:    regexp.MustCompile(`\b[0-9]{2}[A-Za-z]{5}[0-9]{4}[A-Za-z][0-9A-Za-z][Zz][0-9A-Za-z]\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the GSTIN; business tax identifiers are confidential.",
		},
		{
			TypeID:     TypeUPI,
			Pattern:    regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9._\-]{1,}@[A-Za-z]{2,}\b`),
			Severity:   SeverityMedium,
			Suggestion: "Remove the UPI ID; payment handles identify your accounts.",
		},
		{
			TypeID:     TypeBankAccount,
			Pattern:    regexp.MustCompile(`\b\d{8,17}\b`),
			Severity:   SeverityHigh,
			Suggestion: "Remove the account number. Describe the account without digits.",
		},
	}
}

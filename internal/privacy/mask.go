package privacy

import "strings"

// Mask renders the display form of a raw value for a given type. It
// keeps enough shape for human recognition while destroying the payload,
// and never fails: malformed input falls through to a generic prefix
// mask. Deterministic — the same raw value always masks the same way.
func Mask(typeID, value string) string {
	switch typeID {
	case TypeEmail:
		return maskEmail(value)
	case TypeSSN:
		return "***-**-****"
	case TypeCreditCard:
		return "****-****-****-****"
	case TypeBankAccount:
		return "************"
	case TypePhone, TypePhoneIndia:
		return maskKeepLast(digitsOnly(value), 4, "X")
	case TypeIPAddress:
		return maskIP(value)
	case TypeAadhaar, TypeAadhaarStandalone:
		return maskAadhaar(value)
	case TypePAN, TypePANStandalone:
		return maskPAN(value)
	case TypeVoterID:
		return maskKeepLast(value, 3, "*")
	case TypeIFSC:
		if len(value) >= 4 {
			return value[:4] + "0******"
		}
		return genericMask(value)
	case TypeGSTIN:
		return maskKeepLast(value, 2, "*")
	case TypeUPI:
		return maskUPI(value)
	case TypeAWSAccessKey, TypeAWSSecretKey, TypeGoogleAPIKey, TypeGitHubToken,
		TypeSlackToken, TypeStripeKey, TypeAnthropicKey, TypeOpenAIKey,
		TypeJWT, TypeGenericAPIKey, TypeSSHKey:
		return maskSecret(value)
	case TypePrivateKey:
		return "-----PRIVATE KEY [REDACTED]-----"
	case TypeDBConnectionString:
		return maskConnectionString(value)
	case TypePassword:
		return "password=********"
	default:
		return genericMask(value)
	}
}

// maskEmail keeps the first local-part character and the full domain.
func maskEmail(value string) string {
	i := strings.IndexByte(value, '@')
	if i <= 0 {
		return genericMask(value)
	}
	return value[:1] + "***" + value[i:]
}

// maskSecret keeps a short prefix and suffix so the owner can identify
// which credential leaked.
func maskSecret(value string) string {
	if len(value) < 12 {
		return genericMask(value)
	}
	return value[:4] + "..." + value[len(value)-4:]
}

func maskIP(value string) string {
	segs := strings.Split(value, ".")
	if len(segs) != 4 {
		return genericMask(value)
	}
	return segs[0] + ".***.***.***"
}

func maskAadhaar(value string) string {
	d := digitsOnly(value)
	if len(d) < 4 {
		return "XXXX XXXX XXXX"
	}
	return "XXXX XXXX " + d[len(d)-4:]
}

func maskPAN(value string) string {
	// Labelled matches carry a prefix; the identifier is the last ten
	// characters.
	if len(value) < 10 {
		return genericMask(value)
	}
	id := value[len(value)-10:]
	return id[:2] + "******" + id[9:]
}

func maskUPI(value string) string {
	i := strings.IndexByte(value, '@')
	if i <= 0 {
		return genericMask(value)
	}
	keep := i
	if keep > 3 {
		keep = 3
	}
	return value[:keep] + "***" + value[i:]
}

// maskConnectionString blanks the credential portion between scheme and
// host.
func maskConnectionString(value string) string {
	schemeEnd := strings.Index(value, "://")
	at := strings.LastIndexByte(value, '@')
	if schemeEnd < 0 || at < 0 || at < schemeEnd {
		return genericMask(value)
	}
	return value[:schemeEnd+3] + "****:****" + value[at:]
}

// maskKeepLast masks everything but the last n characters.
func maskKeepLast(value string, n int, pad string) string {
	if len(value) <= n {
		return strings.Repeat(pad, len(value))
	}
	return strings.Repeat(pad, len(value)-n) + value[len(value)-n:]
}

// genericMask is the defensive default for malformed input: first four
// characters plus an ellipsis of asterisks.
func genericMask(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + "***"
}

package privacy

import (
	"strconv"
	"strings"
	"unicode"
)

// Context window radii, in characters. These encode tuned false-positive
// tradeoffs; change them only with measurement.
const (
	windowDocumentID  = 30  // passport, driver license, tax ID, medical record
	windowNumericID   = 50  // undashed SSN, Aadhaar, India ID fallbacks, bank (near)
	windowFinanceWide = 100 // bank account secondary check
)

var (
	ssnKeywords     = []string{"ssn", "social security", "ss#"}
	financeKeywords = []string{"account", "routing", "bank", "iban", "swift", "wire", "deposit", "checking", "savings"}
	passportWords   = []string{"passport"}
	licenseWords    = []string{"license", "licence", "driving", "dl#", "dmv"}
	taxWords        = []string{"tax", "ein", "tin"}
	medicalWords    = []string{"mrn", "medical record", "patient", "chart"}
	panContextWords = []string{"pan", "permanent account"}
	aadhaarWords    = []string{"aadhaar", "aadhar", "uid", "uidai"}
	voterWords      = []string{"voter", "epic", "election"}
	ifscWords       = []string{"ifsc", "branch", "bank"}
	gstinWords      = []string{"gst", "gstin", "tax"}
	nameVocabWords  = []string{"name", "father", "mother", "applicant", "mr.", "mrs.", "ms.", "s/o", "d/o"}
)

// isValidInContext is the per-type contextual validator: given a raw
// pattern hit and its position, decide whether it survives as a finding.
// Pure function over the text; types without a dedicated heuristic accept
// on pattern match alone.
func isValidInContext(typeID, match, text string, pos int) bool {
	switch typeID {
	case TypeEmail:
		return isValidEmail(match)
	case TypeSSN:
		return isValidSSN(match, text, pos)
	case TypeIPAddress:
		return isValidIPv4(match)
	case TypeCreditCard:
		return passesLuhn(digitsOnly(match))
	case TypeBankAccount:
		return isValidBankAccount(match, text, pos)
	case TypePassport:
		return hasContext(text, pos, pos+len(match), windowDocumentID, passportWords)
	case TypeDriverLicense:
		return hasContext(text, pos, pos+len(match), windowDocumentID, licenseWords)
	case TypeTaxID:
		return hasContext(text, pos, pos+len(match), windowDocumentID, taxWords)
	case TypeMedicalRecord:
		return hasContext(text, pos, pos+len(match), windowDocumentID, medicalWords)
	case TypePAN:
		return isValidPAN(match, text, pos)
	case TypePANStandalone:
		return isValidStandalonePAN(match, text, pos)
	case TypeAadhaar, TypeAadhaarStandalone:
		// Grouping alone is indistinguishable from arbitrary numeric IDs,
		// so Aadhaar always needs explicit context.
		return hasContext(text, pos, pos+len(match), windowNumericID, aadhaarWords)
	case TypeVoterID:
		return isStructuralVoterID(match) || hasContext(text, pos, pos+len(match), windowNumericID, voterWords)
	case TypeIFSC:
		return isStructuralIFSC(match) || hasContext(text, pos, pos+len(match), windowNumericID, ifscWords)
	case TypeGSTIN:
		return isStructuralGSTIN(match) || hasContext(text, pos, pos+len(match), windowNumericID, gstinWords)
	case TypeUPI:
		// Anything with a dotted domain is an email's territory.
		return !strings.Contains(afterAt(match), ".")
	default:
		return true
	}
}

// isValidEmail requires exactly one separator splitting non-empty local
// and domain parts, a dotted domain, and a top-level segment of at least
// two characters.
func isValidEmail(match string) bool {
	parts := strings.Split(match, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	segs := strings.Split(domain, ".")
	tld := segs[len(segs)-1]
	return len(tld) >= 2
}

// isValidSSN applies the dash-grouping policy: 3-2-4 is accepted as-is,
// a 4-4 grouping that reads as a year range (19xx/20xx on both sides) is
// rejected outright, and everything else needs an explicit SSN keyword
// nearby.
func isValidSSN(match, text string, pos int) bool {
	parts := strings.Split(match, "-")
	if len(parts) == 3 && len(parts[0]) == 3 && len(parts[1]) == 2 && len(parts[2]) == 4 {
		return true
	}
	if len(parts) == 2 && len(parts[0]) == 4 && len(parts[1]) == 4 {
		if looksLikeYear(parts[0]) && looksLikeYear(parts[1]) {
			return false
		}
	}
	return hasContext(text, pos, pos+len(match), windowNumericID, ssnKeywords)
}

func looksLikeYear(s string) bool {
	return len(s) == 4 && (strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20"))
}

// isValidIPv4 checks every dot-separated segment parses into [0, 255].
func isValidIPv4(match string) bool {
	segs := strings.Split(match, ".")
	if len(segs) != 4 {
		return false
	}
	for _, seg := range segs {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// isValidBankAccount accepts digit runs near finance vocabulary, with a
// wider window allowed for plausible account-number lengths.
func isValidBankAccount(match, text string, pos int) bool {
	end := pos + len(match)
	if hasContext(text, pos, end, windowNumericID, financeKeywords) {
		return true
	}
	n := len(digitsOnly(match))
	return n >= 8 && n <= 17 && hasContext(text, pos, end, windowFinanceWide, financeKeywords)
}

// isValidPAN validates the labelled PAN form: the trailing ten characters
// must fit the letter/digit layout; failing that, fall back to nearby PAN
// context.
func isValidPAN(match, text string, pos int) bool {
	if len(match) >= 10 && isStructuralPAN(strings.ToUpper(match[len(match)-10:])) {
		return true
	}
	return hasContext(text, pos, pos+len(match), windowNumericID, panContextWords)
}

// isValidStandalonePAN validates a bare 10-character PAN-like token.
// Person-name vocabulary nearby suppresses acceptance unless PAN-specific
// context is also present, since common name strings coincidentally fit
// the template.
func isValidStandalonePAN(match, text string, pos int) bool {
	end := pos + len(match)
	if !isStructuralPAN(match) {
		return hasContext(text, pos, end, windowNumericID, panContextWords)
	}
	if hasContext(text, pos, end, windowNumericID, nameVocabWords) &&
		!hasContext(text, pos, end, windowNumericID, panContextWords) {
		return false
	}
	return true
}

// isStructuralPAN checks the exact PAN layout: five uppercase letters,
// four digits, one uppercase letter.
func isStructuralPAN(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i, r := range s {
		switch {
		case i < 5 || i == 9:
			if !unicode.IsUpper(r) {
				return false
			}
		default:
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// isStructuralVoterID checks the EPIC layout: three uppercase letters,
// seven digits.
func isStructuralVoterID(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i, r := range s {
		if i < 3 {
			if !unicode.IsUpper(r) {
				return false
			}
		} else if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isStructuralIFSC checks the IFSC layout: four uppercase letters, a
// literal zero, six alphanumerics.
func isStructuralIFSC(s string) bool {
	if len(s) != 11 || s[4] != '0' {
		return false
	}
	for i, r := range s {
		if i < 4 {
			if !unicode.IsUpper(r) {
				return false
			}
		} else if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isStructuralGSTIN checks the GSTIN layout: a two-digit state code, an
// embedded PAN, an entity digit, a letter, a literal Z, and a check
// character.
func isStructuralGSTIN(s string) bool {
	if len(s) != 15 || s[13] != 'Z' {
		return false
	}
	if !isAllDigits(s[:2]) || !isStructuralPAN(s[2:12]) {
		return false
	}
	r := rune(s[12])
	if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return false
	}
	c := rune(s[14])
	return unicode.IsUpper(c) || unicode.IsDigit(c)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// passesLuhn runs the Luhn checksum over a digit string: double every
// second digit from the right, subtract 9 when the double exceeds 9, and
// require the sum to divide by 10.
func passesLuhn(digits string) bool {
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// hasContext reports whether any keyword occurs, case-insensitively, in
// the window of `radius` characters on either side of [start, end).
func hasContext(text string, start, end, radius int, keywords []string) bool {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:hi])
	for _, kw := range keywords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func afterAt(s string) string {
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

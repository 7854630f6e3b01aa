package privacy

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"jane.doe@example.com", true},
		{"a@b.co", true},
		{"a@b@c.com", false},
		{"@example.com", false},
		{"jane@nodot", false},
		{"jane@example.c", false},
	}

	for _, tc := range cases {
		if got := isValidEmail(tc.input); got != tc.want {
			t.Errorf("isValidEmail(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsValidSSN(t *testing.T) {
	t.Run("DashGroupedAlwaysValid", func(t *testing.T) {
		if !isValidSSN("123-45-6789", "123-45-6789", 0) {
			t.Error("3-2-4 grouping rejected")
		}
	})

	t.Run("YearRangeAlwaysInvalid", func(t *testing.T) {
		text := "the ssn 2024-2025 plan" // keyword nearby must not rescue it
		if isValidSSN("2024-2025", text, 8) {
			t.Error("Year range accepted as SSN")
		}
	})

	t.Run("FourFourNonYearNeedsKeyword", func(t *testing.T) {
		if isValidSSN("1234-5678", "code 1234-5678 here", 5) {
			t.Error("4-4 grouping accepted without keyword")
		}
		if !isValidSSN("1234-5678", "ssn 1234-5678 here", 4) {
			t.Error("4-4 grouping with keyword rejected")
		}
	})

	t.Run("UndashedNeedsKeyword", func(t *testing.T) {
		if isValidSSN("123456789", "id 123456789", 3) {
			t.Error("Bare nine digits accepted without keyword")
		}
		if !isValidSSN("123456789", "social security 123456789", 16) {
			t.Error("Nine digits with keyword rejected")
		}
	})
}

func TestPassesLuhn(t *testing.T) {
	cases := []struct {
		digits string
		want   bool
	}{
		{"4111111111111111", true},
		{"4111111111111112", false},
		{"5555555555554444", true},
		{"1234", false},         // too short
		{"411111111111111x", false},
	}

	for _, tc := range cases {
		if got := passesLuhn(tc.digits); got != tc.want {
			t.Errorf("passesLuhn(%q) = %v, want %v", tc.digits, got, tc.want)
		}
	}
}

func TestIsValidIPv4(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"192.168.1.1", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"999.1.1.1", false},
		{"1.2.3.256", false},
	}

	for _, tc := range cases {
		if got := isValidIPv4(tc.input); got != tc.want {
			t.Errorf("isValidIPv4(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsValidBankAccount(t *testing.T) {
	t.Run("NearFinanceKeyword", func(t *testing.T) {
		text := "my account number is 12345678"
		if !isValidBankAccount("12345678", text, 21) {
			t.Error("Digit run next to 'account' rejected")
		}
	})

	t.Run("NoFinanceContext", func(t *testing.T) {
		text := "the build number is 12345678"
		if isValidBankAccount("12345678", text, 20) {
			t.Error("Digit run without finance context accepted")
		}
	})

	t.Run("WideWindowForPlausibleLengths", func(t *testing.T) {
		pad := "please review the following statement carefully before we proceed "
		text := "bank " + pad + "12345678901"
		pos := len("bank ") + len(pad)
		if !isValidBankAccount("12345678901", text, pos) {
			t.Error("Plausible account length not accepted in wide window")
		}
	})
}

func TestStandalonePANNameSuppression(t *testing.T) {
	t.Run("NameVocabSuppresses", func(t *testing.T) {
		text := "applicant name: ABCDE1234F"
		if isValidStandalonePAN("ABCDE1234F", text, 16) {
			t.Error("PAN-shaped token near name vocabulary accepted")
		}
	})

	t.Run("PANContextOverridesSuppression", func(t *testing.T) {
		text := "applicant name and pan: ABCDE1234F"
		if !isValidStandalonePAN("ABCDE1234F", text, 24) {
			t.Error("PAN context did not override name suppression")
		}
	})

	t.Run("StructuralAloneAccepted", func(t *testing.T) {
		text := "ref ABCDE1234F done"
		if !isValidStandalonePAN("ABCDE1234F", text, 4) {
			t.Error("Structural PAN with neutral context rejected")
		}
	})

	t.Run("NonStructuralRejected", func(t *testing.T) {
		text := "ref abcde1234f done"
		if isValidStandalonePAN("abcde1234f", text, 4) {
			t.Error("Lowercase token accepted without PAN context")
		}
	})
}

func TestStructuralCheckers(t *testing.T) {
	t.Run("PAN", func(t *testing.T) {
		if !isStructuralPAN("ABCDE1234F") {
			t.Error("Valid PAN layout rejected")
		}
		if isStructuralPAN("ABCDE12345") || isStructuralPAN("ABCD1234FG") {
			t.Error("Invalid PAN layout accepted")
		}
	})

	t.Run("VoterID", func(t *testing.T) {
		if !isStructuralVoterID("ABC1234567") {
			t.Error("Valid EPIC layout rejected")
		}
		if isStructuralVoterID("AB12345678") {
			t.Error("Invalid EPIC layout accepted")
		}
	})

	t.Run("IFSC", func(t *testing.T) {
		if !isStructuralIFSC("SBIN0001234") {
			t.Error("Valid IFSC rejected")
		}
		if isStructuralIFSC("SBIN1001234") {
			t.Error("IFSC without literal zero accepted")
		}
	})

	t.Run("GSTIN", func(t *testing.T) {
		if !isStructuralGSTIN("27ABCDE1234F1Z5") {
			t.Error("Valid GSTIN rejected")
		}
		if isStructuralGSTIN("27ABCDE1234F1X5") {
			t.Error("GSTIN without Z marker accepted")
		}
	})
}

func TestHasContextWindow(t *testing.T) {
	text := "account is far away from the digits 12345678"
	start := len(text) - 8

	if !hasContext(text, start, len(text), 50, financeKeywords) {
		t.Error("Keyword within window not found")
	}
	if hasContext(text, start, len(text), 5, financeKeywords) {
		t.Error("Keyword outside narrow window reported")
	}
}

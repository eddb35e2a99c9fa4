package document

import (
	"fmt"
	"strings"
	"time"
)

// SAF-T PT QR code field codes used by the reconciliation rules.
const (
	qrCodeSupplierNIF     = "A"
	qrCodeAcquirerNIF     = "B"
	qrCodeAcquirerCountry = "C"
	qrCodeDocumentType    = "D"
	qrCodeIssueDate       = "F"
	qrCodeDocumentNumber  = "G"
)

// qrRequiredCodes is the minimal field-code set a SAF-T PT QR code must
// carry to be considered valid.
var qrRequiredCodes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I1", "Q", "R"}

// qrToFields translates SAF-T PT field codes to the canonical field names
// used by the workflow engine.
var qrToFields = []struct {
	field string
	code  string
}{
	{"supplier_nif", "A"},
	{"acquirer_nif", "B"},
	{"acquiring_country", "C"},
	{"document_type", "D"},
	{"document_issue_date", "F"},
	{"document_number", "G"},
	{"atcud_code", "H"},
	{"supplier_country", "I1"},
	{"vat_exempt_tax_base", "I2"},
	{"vat_reduced_tax_base", "I3"},
	{"reduced_rate_vat_total", "I4"},
	{"intermediate_rate_vat_base", "I5"},
	{"intermediate_rate_vat_total", "I6"},
	{"standard_rate_vat_base", "I7"},
	{"standard_rate_vat_total", "I8"},
	{"stamp_duty", "M"},
	{"total_tax_amount", "N"},
	{"document_total_with_tax", "O"},
	{"withholding_tax", "P"},
	{"other_information", "S"},
}

// DecodeQRCode parses a SAF-T PT QR payload into a field-code mapping.
// Payloads without both separators decode to an empty mapping; a malformed
// or absent QR code is a normal case, not an error.
func DecodeQRCode(payload string) map[string]string {
	decoded := map[string]string{}
	if !strings.Contains(payload, ":") || !strings.Contains(payload, "*") {
		return decoded
	}
	for _, pair := range strings.Split(payload, "*") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		decoded[key] = value
	}
	return decoded
}

// ValidateQRCode reports whether the payload decodes to a mapping carrying
// the full required SAF-T PT field-code set.
func ValidateQRCode(payload string) bool {
	decoded := DecodeQRCode(payload)
	for _, code := range qrRequiredCodes {
		if _, ok := decoded[code]; !ok {
			return false
		}
	}
	return true
}

// FirstValidQRCode scans candidate QR payloads in document order and returns
// the decoded mapping of the first one that validates. The policy is first
// valid wins, not best match. Returns an empty mapping when none validate.
func FirstValidQRCode(payloads []string) map[string]string {
	for _, payload := range payloads {
		if ValidateQRCode(payload) {
			return DecodeQRCode(payload)
		}
	}
	return map[string]string{}
}

// TranslateQRToFields maps a decoded QR code to canonical field names,
// reformatting the issue date from YYYYMMDD to DD/MM/YYYY. The date reformat
// fails when code F is absent or malformed; it is always present on payloads
// that passed ValidateQRCode.
func TranslateQRToFields(qrInfo map[string]string) (map[string]string, error) {
	if len(qrInfo) == 0 {
		return map[string]string{}, nil
	}
	fields := map[string]string{}
	for _, entry := range qrToFields {
		if value, ok := qrInfo[entry.code]; ok {
			fields[entry.field] = value
		}
	}

	raw, ok := fields["document_issue_date"]
	if !ok || len(raw) != 8 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIssueDate, raw)
	}
	issued, err := time.Parse("20060102", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIssueDate, raw)
	}
	fields["document_issue_date"] = issued.Format("02/01/2006")

	return fields, nil
}

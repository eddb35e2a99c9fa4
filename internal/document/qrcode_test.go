package document

import (
	"errors"
	"testing"
)

const sampleQRPayload = "A:509104720*B:508453488*C:PT*D:NC*E:N*F:20240319*G:NC 2024A4/1*H:JJJRJ85C-1*I1:PT*I7:6390.21*I8:1469.75*N:1469.75*O:7859.96*Q:PqIU*R:0006"

func TestDecodeQRCode(t *testing.T) {
	decoded := DecodeQRCode(sampleQRPayload)

	if len(decoded) != 15 {
		t.Fatalf("decoded %d pairs, want 15", len(decoded))
	}

	want := map[string]string{
		"A": "509104720",
		"B": "508453488",
		"C": "PT",
		"D": "NC",
		"F": "20240319",
		"G": "NC 2024A4/1",
		"H": "JJJRJ85C-1",
		"O": "7859.96",
	}
	for code, value := range want {
		if decoded[code] != value {
			t.Errorf("code %s = %q, want %q", code, decoded[code], value)
		}
	}
}

func TestDecodeQRCodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"no separators", "https://example.pt/ticket/123456"},
		{"colons only", "A:1:2:3"},
		{"asterisks only", "123*456*789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if decoded := DecodeQRCode(tt.payload); len(decoded) != 0 {
				t.Errorf("decoded %v, want empty mapping", decoded)
			}
		})
	}
}

func TestValidateQRCode(t *testing.T) {
	if !ValidateQRCode(sampleQRPayload) {
		t.Error("sample payload should validate")
	}

	// Dropping the leading supplier NIF pair removes a required code
	truncated := sampleQRPayload[12:]
	if ValidateQRCode(truncated) {
		t.Error("payload without code A should not validate")
	}

	if ValidateQRCode("not a qr code") {
		t.Error("arbitrary text should not validate")
	}
}

func TestFirstValidQRCode(t *testing.T) {
	payloads := []string{
		"https://example.pt/loyalty/9981",
		sampleQRPayload[12:],
		sampleQRPayload,
		"A:111111111*B:222222222*C:PT*D:FT*E:N*F:20240101*G:FT 1/1*H:X-1*I1:PT*Q:AAAA*R:0001",
	}

	qr := FirstValidQRCode(payloads)
	if qr["A"] != "509104720" {
		t.Errorf("code A = %q, want the first valid payload to win", qr["A"])
	}

	if qr := FirstValidQRCode([]string{"nope", ""}); len(qr) != 0 {
		t.Errorf("got %v, want empty mapping when nothing validates", qr)
	}

	if qr := FirstValidQRCode(nil); len(qr) != 0 {
		t.Errorf("got %v, want empty mapping for no payloads", qr)
	}
}

func TestTranslateQRToFields(t *testing.T) {
	fields, err := TranslateQRToFields(DecodeQRCode(sampleQRPayload))
	if err != nil {
		t.Fatalf("TranslateQRToFields: %v", err)
	}

	want := map[string]string{
		"supplier_nif":            "509104720",
		"acquirer_nif":            "508453488",
		"acquiring_country":       "PT",
		"document_type":           "NC",
		"document_issue_date":     "19/03/2024",
		"document_number":         "NC 2024A4/1",
		"atcud_code":              "JJJRJ85C-1",
		"supplier_country":        "PT",
		"standard_rate_vat_base":  "6390.21",
		"standard_rate_vat_total": "1469.75",
		"total_tax_amount":        "1469.75",
		"document_total_with_tax": "7859.96",
	}
	for field, value := range want {
		if fields[field] != value {
			t.Errorf("%s = %q, want %q", field, fields[field], value)
		}
	}

	// Codes E, Q and R have no canonical field name
	if _, ok := fields["E"]; ok {
		t.Error("untranslated codes must not leak into the field mapping")
	}
}

func TestTranslateQRToFieldsEmpty(t *testing.T) {
	fields, err := TranslateQRToFields(map[string]string{})
	if err != nil {
		t.Fatalf("TranslateQRToFields: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("got %v, want empty mapping", fields)
	}
}

func TestTranslateQRToFieldsBadDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"missing", ""},
		{"short", "2024"},
		{"not numeric", "19/03/24"},
		{"impossible", "20241341"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qr := DecodeQRCode(sampleQRPayload)
			if tt.date == "" {
				delete(qr, "F")
			} else {
				qr["F"] = tt.date
			}
			if _, err := TranslateQRToFields(qr); !errors.Is(err, ErrInvalidIssueDate) {
				t.Errorf("err = %v, want ErrInvalidIssueDate", err)
			}
		})
	}
}

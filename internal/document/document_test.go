package document

import (
	"errors"
	"testing"
)

func sampleClassification() Classification {
	return ClassificationFromCompletion(map[string]any{
		"valid_document":          "Y",
		"original_copy":           "N",
		"has_atcud":               "N",
		"supplier_name":           "Fornecedor Exemplo Lda",
		"supplier_vat":            "DE123456789",
		"acquirer_name":           "Cliente Exemplo SA",
		"acquirer_vat":            "PT999999990",
		"supplier_country":        "DE",
		"document_type":           "FT",
		"document_number":         "FT 2024/42",
		"classification_comments": "Clean print, all parties legible.",
	})
}

func TestClassificationFromCompletion(t *testing.T) {
	c := sampleClassification()

	if c.ValidDocument != "Y" {
		t.Errorf("ValidDocument = %q", c.ValidDocument)
	}
	if c.SupplierName != "Fornecedor Exemplo Lda" {
		t.Errorf("SupplierName = %q", c.SupplierName)
	}
	if c.DocumentNumber != "FT 2024/42" {
		t.Errorf("DocumentNumber = %q", c.DocumentNumber)
	}
	if c.Raw == nil {
		t.Error("Raw completion should be retained")
	}

	// Absent and non-string keys parse to empty strings
	partial := ClassificationFromCompletion(map[string]any{"valid_document": 1})
	if partial.ValidDocument != "" || partial.SupplierVAT != "" {
		t.Errorf("partial completion = %+v, want empty strings", partial)
	}
}

func TestApplyClassificationWithoutQR(t *testing.T) {
	d := New("docs/invoice.pdf", "")
	out := ApplyClassification(d, sampleClassification())

	if !out.Valid {
		t.Error("document should be valid")
	}
	if out.DocType != "FT" {
		t.Errorf("DocType = %q, want FT", out.DocType)
	}

	want := map[string]string{
		"valid_document":   "Y",
		"supplier_name":    "Fornecedor Exemplo Lda",
		"supplier_vat":     "DE123456789",
		"supplier_country": "DE",
		"acquirer_name":    "Cliente Exemplo SA",
		"acquirer_vat":     "PT999999990",
		"document_type":    "FT",
		"document_number":  "FT 2024/42",
		"has_atcud":        "N",
	}
	for field, value := range want {
		if out.Fields[field] != value {
			t.Errorf("%s = %v, want %q", field, out.Fields[field], value)
		}
	}

	if len(out.Comments) != 1 || out.Comments[0] != "Clean print, all parties legible." {
		t.Errorf("Comments = %v", out.Comments)
	}

	// The input document is untouched
	if len(d.Fields) != 0 {
		t.Error("ApplyClassification must not mutate its input")
	}
}

func TestApplyClassificationQRWins(t *testing.T) {
	d := New("docs/invoice.pdf", "").WithQRCodeData(DecodeQRCode(sampleQRPayload))

	// The model disagrees with the QR code on every identity field
	c := sampleClassification()
	out := ApplyClassification(d, c)

	want := map[string]string{
		"supplier_vat":     "PT509104720",
		"acquirer_vat":     "PT508453488",
		"supplier_country": "PT",
		"document_type":    "NC",
		"document_number":  "NC 2024A4/1",
		"has_atcud":        "Y",
	}
	for field, value := range want {
		if out.Fields[field] != value {
			t.Errorf("%s = %v, want %q", field, out.Fields[field], value)
		}
	}
	if out.DocType != "NC" {
		t.Errorf("DocType = %q, want NC", out.DocType)
	}

	// Names and comments still come from the model, the QR has none
	if out.Fields["supplier_name"] != "Fornecedor Exemplo Lda" {
		t.Errorf("supplier_name = %v", out.Fields["supplier_name"])
	}
	if out.Fields["acquirer_name"] != "Cliente Exemplo SA" {
		t.Errorf("acquirer_name = %v", out.Fields["acquirer_name"])
	}
	if out.Fields["classification_comments"] != "Clean print, all parties legible." {
		t.Errorf("classification_comments = %v", out.Fields["classification_comments"])
	}
}

func TestWithQRCodeData(t *testing.T) {
	d := New("docs/invoice.pdf", "").WithQRCodeData(DecodeQRCode(sampleQRPayload))

	if !d.HasQR() {
		t.Error("HasQR should report true")
	}
	if d.DocType != "NC" {
		t.Errorf("DocType = %q, want the QR document type", d.DocType)
	}
	if !d.Valid {
		t.Error("a valid QR code marks the document valid")
	}
}

func TestPostprocessExtractionSchemaComplete(t *testing.T) {
	d := New("docs/invoice.pdf", "")

	_, out, err := PostprocessExtraction(d, map[string]any{
		"currency": "EUR",
	})
	if err != nil {
		t.Fatalf("PostprocessExtraction: %v", err)
	}

	for _, field := range AllExtractionFields {
		switch field {
		case FieldItemsDescription, FieldItemsQuantity, FieldItemsUnitPrice:
			// Collapsed into invoiced_items
			if _, ok := out[field]; ok {
				t.Errorf("%s should be removed after item formatting", field)
			}
		default:
			if _, ok := out[field]; !ok {
				t.Errorf("%s missing from normalized output", field)
			}
		}
	}

	if out["currency"] != "EUR" {
		t.Errorf("currency = %v", out["currency"])
	}
	if out["iban"] != "" {
		t.Errorf("absent field iban = %v, want empty string", out["iban"])
	}
	if _, ok := out["invoiced_items"].([]InvoiceItem); !ok {
		t.Errorf("invoiced_items = %T, want []InvoiceItem", out["invoiced_items"])
	}
	if got := out["missing_mandatory_fields"].([]string); len(got) != 0 {
		t.Errorf("missing_mandatory_fields = %v", got)
	}
}

func TestPostprocessExtractionSentinel(t *testing.T) {
	d := New("docs/invoice.pdf", "")

	_, out, err := PostprocessExtraction(d, map[string]any{
		"iban":                     MissingSentinel,
		"missing_optional_fields":  []any{"iban"},
		"missing_mandatory_fields": []any{},
	})
	if err != nil {
		t.Fatalf("PostprocessExtraction: %v", err)
	}
	if out["iban"] != "" {
		t.Errorf("iban = %v, want sentinel rewritten to empty string", out["iban"])
	}
}

func TestPostprocessExtractionUndeclaredSentinel(t *testing.T) {
	d := New("docs/invoice.pdf", "")

	_, _, err := PostprocessExtraction(d, map[string]any{
		"iban": MissingSentinel,
	})
	if !errors.Is(err, ErrUndeclaredMissingField) {
		t.Fatalf("err = %v, want ErrUndeclaredMissingField", err)
	}
}

func TestPostprocessExtractionQRBackfill(t *testing.T) {
	d := New("docs/invoice.pdf", "").WithQRCodeData(DecodeQRCode(sampleQRPayload))

	_, out, err := PostprocessExtraction(d, map[string]any{
		// The model already answered this one; QR must not override it
		"document_total_with_tax": "9999.99",
	})
	if err != nil {
		t.Fatalf("PostprocessExtraction: %v", err)
	}

	if out["document_total_with_tax"] != "9999.99" {
		t.Errorf("document_total_with_tax = %v, want the model value kept", out["document_total_with_tax"])
	}
	if out["document_issue_date"] != "19/03/2024" {
		t.Errorf("document_issue_date = %v, want QR backfill with reformatted date", out["document_issue_date"])
	}
	if out["atcud_code"] != "JJJRJ85C-1" {
		t.Errorf("atcud_code = %v, want QR backfill", out["atcud_code"])
	}
	// Fields absent from both model and QR stay empty
	if out["iban"] != "" {
		t.Errorf("iban = %v", out["iban"])
	}
}

func TestPostprocessExtractionNumericCoercion(t *testing.T) {
	d := New("docs/invoice.pdf", "")

	_, out, err := PostprocessExtraction(d, map[string]any{
		"total_tax_amount":        1469.75,
		"document_total_with_tax": float64(7860),
	})
	if err != nil {
		t.Fatalf("PostprocessExtraction: %v", err)
	}

	if out["total_tax_amount"] != "1469.75" {
		t.Errorf("total_tax_amount = %v (%T), want \"1469.75\"", out["total_tax_amount"], out["total_tax_amount"])
	}
	if out["document_total_with_tax"] != "7860" {
		t.Errorf("document_total_with_tax = %v, want \"7860\"", out["document_total_with_tax"])
	}
}

func TestPostprocessExtractionMergesFields(t *testing.T) {
	d := New("docs/invoice.pdf", "")
	d.Fields["supplier_name"] = "Fornecedor Exemplo Lda"

	updated, _, err := PostprocessExtraction(d, map[string]any{
		"currency": "EUR",
	})
	if err != nil {
		t.Fatalf("PostprocessExtraction: %v", err)
	}

	if updated.Fields["supplier_name"] != "Fornecedor Exemplo Lda" {
		t.Error("classification fields must survive extraction merge")
	}
	if updated.Fields["currency"] != "EUR" {
		t.Error("extraction fields must be merged into the document")
	}
	if _, ok := d.Fields["currency"]; ok {
		t.Error("PostprocessExtraction must not mutate its input")
	}
}

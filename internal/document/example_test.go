package document_test

import (
	"fmt"

	"docintake/internal/document"
)

// ExampleDecodeQRCode demonstrates decoding a SAF-T PT QR code payload as
// printed on Portuguese invoices.
func ExampleDecodeQRCode() {
	payload := "A:509104720*B:508453488*C:PT*D:FT*E:N*F:20240319*G:FT 2024A4/1*H:JJJRJ85C-1*I1:PT*I7:100.00*I8:23.00*N:23.00*O:123.00*Q:PqIU*R:0006"

	decoded := document.DecodeQRCode(payload)

	fmt.Println("supplier NIF:", decoded["A"])
	fmt.Println("document type:", decoded["D"])
	fmt.Println("document number:", decoded["G"])
	fmt.Println("valid:", document.ValidateQRCode(payload))
	// Output:
	// supplier NIF: 509104720
	// document type: FT
	// document number: FT 2024A4/1
	// valid: true
}

// ExampleFirstValidQRCode shows the selection policy over several detected
// barcode payloads: the first payload that validates wins, loyalty links
// and truncated codes are skipped.
func ExampleFirstValidQRCode() {
	payloads := []string{
		"https://loja.example.pt/cupao/991",
		"A:509104720*B:508453488*C:PT*D:NC*E:N*F:20240319*G:NC 2024A4/1*H:JJJRJ85C-1*I1:PT*Q:PqIU*R:0006",
	}

	qr := document.FirstValidQRCode(payloads)
	fmt.Println("document type:", qr["D"])
	// Output:
	// document type: NC
}

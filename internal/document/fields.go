package document

// MissingSentinel is the token the extraction model uses to flag a field it
// could not parse. It never leaves this package: reconciliation rewrites it
// to an empty string and keeps the field name in the missing-fields lists.
const MissingSentinel = "<missing>"

// Names of the three parallel item arrays in an extraction completion. They
// are index-aligned and collapse into invoiced_items during postprocessing.
const (
	FieldItemsDescription = "invoiced_items_description"
	FieldItemsQuantity    = "invoiced_items_quantity"
	FieldItemsUnitPrice   = "unit_price"
)

// AllExtractionFields is the canonical extraction schema. Every name here is
// present in the normalized output, even for document types that never carry
// it; no field is ever silently absent. The selector and the reconciler both
// range over this list, so schema coverage is enforced in one place.
var AllExtractionFields = []string{
	"document_issue_date",
	"document_due_date",
	"associated_invoice_number",
	"currency",
	"total_tax_amount",
	"document_total_with_tax",
	FieldItemsDescription,
	FieldItemsQuantity,
	FieldItemsUnitPrice,
	"acquiring_country",
	"payment_term",
	"atcud_code",
	"po_number",
	"vat_exempt_tax_base",
	"vat_reduced_tax_base",
	"reduced_rate_vat_total",
	"intermediate_rate_vat_base",
	"intermediate_rate_vat_total",
	"standard_rate_vat_base",
	"standard_rate_vat_total",
	"stamp_duty",
	"withholding_tax",
	"iban",
	"bic_swift",
	"other_information",
	"extraction_comments",
}

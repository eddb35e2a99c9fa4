package document

// InvoiceItem is one row of the invoiced items table. Quantity and unit
// price keep whatever JSON type the model produced; the schema cares about
// key presence and order, not numeric typing.
type InvoiceItem struct {
	Description any `json:"description"`
	Quantity    any `json:"quantity"`
	UnitPrice   any `json:"unit_price"`
}

// FormatInvoiceItems reshapes the three parallel item arrays into one
// sequence of invoiced_items records, positionally zipped. The transform is
// one-way: the three source keys are removed from the mapping. Fields that
// were never arrays (empty or missing items) yield an empty record list.
func FormatInvoiceItems(extraction map[string]any) map[string]any {
	descriptions := asSlice(extraction[FieldItemsDescription])
	quantities := asSlice(extraction[FieldItemsQuantity])
	unitPrices := asSlice(extraction[FieldItemsUnitPrice])
	delete(extraction, FieldItemsDescription)
	delete(extraction, FieldItemsQuantity)
	delete(extraction, FieldItemsUnitPrice)

	n := min(len(descriptions), len(quantities), len(unitPrices))
	items := make([]InvoiceItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, InvoiceItem{
			Description: descriptions[i],
			Quantity:    quantities[i],
			UnitPrice:   unitPrices[i],
		})
	}
	extraction["invoiced_items"] = items

	return extraction
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

package extract

// BuildInvoicePrompt returns the extraction prompt sent with each uploaded
// purchase invoice. The schema mirrors domain.ExtractedInvoice.
func BuildInvoicePrompt() string {
	return `You are a document data extraction assistant. Analyze the provided purchase invoice and extract its data into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- Extract EVERY line item from every page. Do not skip, summarize, or omit any items.
- Normalize the invoice date to YYYY-MM-DD format where possible.
- Amounts must be plain numbers without currency symbols or thousands separators.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object.

The object must follow this schema:
{
  "seller_name": "",
  "invoice_number": "",
  "invoice_date": "",
  "subtotal": 0,
  "cgst_amount": 0,
  "sgst_amount": 0,
  "total_amount": 0,
  "line_items": [
    {
      "item_description": "",
      "hsn_code": "",
      "quantity": 0,
      "rate": 0
    }
  ]
}

If a field is not present in the document, use empty string for text and 0 for numbers.`
}

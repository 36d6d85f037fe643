package extraction

const verifyPrompt = `Is this a procurement quotation, purchase order, invoice, or price list document? Answer with ONLY 'YES' or 'NO'.`

const extractPrompt = `You are a procurement analyst extracting line items from a quotation, purchase order, invoice, or price list page.

Extract every distinct line item visible on this page. For each item, capture the following fields when present, leaving a field out when the page does not show it:
- SKU
- Distributor
- Item Description
- Brand
- Quote Currency
- Quantity
- Serial No
- Start Date
- End Date
- Unit Price
- Total Price
- EU Company
- Comments/Notes
- Quotation Ref No
- Quotation Date
- Quotation End Date
- Quotation Validity

Report prices and quantities as plain numbers without currency symbols or thousands separators. Report dates exactly as printed on the page. Do not invent values for fields the page does not show.

Respond with a JSON object matching this exact structure:
{
  "items": [
    {
      "SKU": "string",
      "Item Description": "string",
      "Quantity": 0,
      "Unit Price": 0.0,
      "Total Price": 0.0
    }
  ]
}

Include additional fields from the list above inside each item object when the page shows them. Respond with {"items": []} when the page contains no line items.`

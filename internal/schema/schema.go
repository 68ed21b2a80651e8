package schema

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the serialized ExtractionResult. It pins the exact
// output field names and the decimal-as-string money encoding; tests and the
// server boundary validate against it.
func BuildResultJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"supplier", "document", "line_items", "totals",
			"raw_text_preview", "warnings", "used_optical_recognition", "confidence",
		},
		"properties": map[string]any{
			"supplier": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":    nullableString(),
					"address": nullableString(),
					"tax_id":  nullableString(),
					"phone":   nullableString(),
					"email":   nullableString(),
				},
			},
			"document": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"document_type": map[string]any{
						"type": "string",
						"enum": []string{"invoice", "receipt", "creditNote", "unknown"},
					},
					"document_number": nullableString(),
					"issue_date": map[string]any{
						"type":    []string{"string", "null"},
						"pattern": `^\d{4}-\d{2}-\d{2}$`,
					},
					"payment_terms": nullableString(),
				},
			},
			"line_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"description": map[string]any{"type": "string"},
						"quantity":    decimalProp(),
						"unit_price":  decimalProp(),
						"line_total":  decimalProp(),
					},
					"required": []string{"description"},
				},
			},
			"totals": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"subtotal":    decimalProp(),
					"tax_amount":  decimalProp(),
					"discount":    decimalProp(),
					"grand_total": decimalProp(),
				},
			},
			"raw_text_preview": map[string]any{"type": "string"},
			"warnings": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"used_optical_recognition": map[string]any{"type": "boolean"},
			"confidence": map[string]any{
				"type": "number", "minimum": 0.0, "maximum": 1.0,
			},
		},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    []string{"string", "null"},
		"pattern": `^-?\d+(\.\d+)?$`,
	}
}

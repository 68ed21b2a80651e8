package constants

// DocumentType classifies the transactional document kind.
type DocumentType string

// Stable values (serialized as-is in extraction results).
const (
	DocTypeInvoice    DocumentType = "invoice"
	DocTypeReceipt    DocumentType = "receipt"
	DocTypeCreditNote DocumentType = "creditNote"
	DocTypeUnknown    DocumentType = "unknown"
)

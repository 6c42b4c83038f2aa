package domain

// RequiredDocuments is the fixed checklist of documents a supplier must
// submit for pre-screening. The document scorer uses its length (18) as the
// denominator when a supplier has no document records at all.
var RequiredDocuments = []string{
	"Company Registration Certificate",
	"Memorandum of Association",
	"VAT Registration Certificate",
	"Shareholder List",
	"Director ID Copies",
	"Company Profile",
	"Audited Financial Statement (Latest Year)",
	"Audited Financial Statement (Previous Year)",
	"Bank Statement (6 Months)",
	"Corporate Bank Account Certificate",
	"Tax Clearance Certificate",
	"Withholding Tax Certificate",
	"Trade License",
	"Factory/Office Lease Agreement",
	"Customer Purchase Orders (Samples)",
	"Customer Invoices (Samples)",
	"Delivery Receipts (Samples)",
	"Board Resolution for Credit Application",
}

// DefaultChecklistSize is the denominator used by the document scorer when
// a supplier has no document records.
const DefaultChecklistSize = 18

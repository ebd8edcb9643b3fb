package models

// Default ledger columns, matching the ING "Af Bij" CSV export.
const (
	ColumnDate         = "Datum"
	ColumnDescription  = "Naam / Omschrijving"
	ColumnAccount      = "Rekening"
	ColumnCounterparty = "Tegenrekening"
	ColumnMutationCode = "Code"
	ColumnDirection    = "Af Bij"
	ColumnAmount       = "Bedrag (EUR)"
	ColumnMutationType = "MutatieSoort"
	ColumnMemo         = "Mededelingen"
)

// Default direction flags and date layout of the ledger export.
const (
	FlagIncome        = "Bij"
	FlagSpending      = "Af"
	DefaultDateLayout = "20060102"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

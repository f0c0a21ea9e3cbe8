package models

// Stored payment statuses
const (
	StatusPaid   = "Sudah Bayar"
	StatusUnpaid = "Belum Bayar"
)

// Display labels for payment status
const (
	LabelPaid   = "Lunas"
	LabelUnpaid = "Belum"
)

// Dues statuses as entered by admins
const (
	DuesStatusPaid   = "Lunas"
	DuesStatusUnpaid = "Belum"
)

// Resource types for saved filters
const (
	ResourcePayments = "payments"
)

// PaymentTypes lists the payment categories residents can pick when uploading proof.
var PaymentTypes = []string{
	"IPL",
	"CCTV",
	"Iuran Bulanan Gang H Genap J Ganjil",
	"Dan lain lain",
}

// Months are the month labels used by the upload form and history filter.
var Months = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MinYear and MaxYear bound the year a resident can submit proof for.
const (
	MinYear = 2020
	MaxYear = 2100
)

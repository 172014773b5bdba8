package constants

// Presisi nominal (digit di belakang koma).
// Batas periode & nominal ada di tag validate DTO.
const AmountScale = 2

// Hari jatuh tempo dalam bulan tagihan (tanggal 1).
const DueDayOfMonth = 1

// Prefix route API
const (
	APIPrefix             = "/api"
	StudentsPath          = "/students"
	PaymentRecordsPath    = "/paymentrecords"
	IncludePaymentsOption = "payments"
)

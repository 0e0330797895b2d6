package entities

// BookingEmailData feeds the status notification email template.
type BookingEmailData struct {
	CustomerName       string
	BookingCode        string
	VehicleName        string
	StartDateFormatted string
	EndDateFormatted   string
	TotalFormatted     string
	Status             string
	CurrentYear        int
}

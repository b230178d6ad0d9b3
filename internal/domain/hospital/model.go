package hospital

// Details is the facility letterhead data stamped onto reports and
// invoices. The system manages exactly one facility, so there is a
// single record with built-in defaults rather than a collection.
type Details struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email,omitempty"`
	Website            string `json:"website,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	TaxID              string `json:"taxId,omitempty"`
	Logo               string `json:"logo,omitempty"`
	Footer             string `json:"footer,omitempty"`
	BankDetails        string `json:"bankDetails,omitempty"`
}

// Update carries the fields a caller may change. Nil means "leave as is".
type Update struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	Website            *string `json:"website"`
	RegistrationNumber *string `json:"registrationNumber"`
	TaxID              *string `json:"taxId"`
	Logo               *string `json:"logo"`
	Footer             *string `json:"footer"`
	BankDetails        *string `json:"bankDetails"`
}

// Defaults returns the out-of-the-box facility details used until the
// operator customizes them, and restored by reset.
func Defaults() Details {
	return Details{
		Name:               "NVR DIAGNOSTICS",
		Address:            "Santharam Hospital, Dowlaiswaram, Rajamahendravaram - 7780377630",
		Phone:              "+91 99089 91881, 81214 38888",
		Email:              "info@nvrdiagnostics.com",
		Website:            "www.nvrdiagnostics.com",
		RegistrationNumber: "NVR-DIAG-12345",
		TaxID:              "GST-ID-67890",
		Logo:               "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?q=80&w=200&auto=format&fit=crop",
		Footer:             "Thank you for choosing NVR Diagnostics. For any queries, please contact our customer support.",
	}
}

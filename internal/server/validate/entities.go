package validate

import (
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

func ClientInput(in models.ClientInput) error {
	var e Errors
	e.required("name", in.Name, length(1, 255))
	e.required("email", in.Email, pattern(emailPattern, "email address"))
	e.nullable("phone", in.Phone, length(0, 50))
	e.nullable("address", in.Address, length(0, 500))
	return e.err()
}

func ClientPatch(p models.ClientPatch) error {
	var e Errors
	e.patchString("name", p.Name, false, length(1, 255))
	e.patchString("email", p.Email, false, pattern(emailPattern, "email address"))
	e.patchString("phone", p.Phone, true, length(0, 50))
	e.patchString("address", p.Address, true, length(0, 500))
	patchNotNull(&e, "is_active", p.IsActive)
	return e.err()
}

func ProjectInput(in models.ProjectInput) error {
	var e Errors
	e.required("name", in.Name, length(1, 255))
	e.nullable("description", in.Description, length(0, 1000))
	e.required("client_id", in.ClientID, nonEmpty())
	if in.HourlyRate == nil {
		e.add("hourly_rate", msgRequired)
	} else {
		e.nonNegative("hourly_rate", *in.HourlyRate)
	}
	e.nullable("currency", in.Currency, pattern(currencyPattern, "ISO 4217 currency code"))
	e.nullable("start_date", in.StartDate, pattern(datePattern, "date (YYYY-MM-DD)"))
	e.nullable("end_date", in.EndDate, pattern(datePattern, "date (YYYY-MM-DD)"))
	if in.Status != nil {
		e.check("status", string(*in.Status), []stringRule{oneOf(models.ProjectStatuses)})
	}
	return e.err()
}

func ProjectPatch(p models.ProjectPatch) error {
	var e Errors
	e.patchString("name", p.Name, false, length(1, 255))
	e.patchString("description", p.Description, true, length(0, 1000))
	e.patchString("client_id", p.ClientID, false, nonEmpty())
	if rate, ok := patchNotNull(&e, "hourly_rate", p.HourlyRate); ok {
		e.nonNegative("hourly_rate", rate)
	}
	e.patchString("currency", p.Currency, false, pattern(currencyPattern, "ISO 4217 currency code"))
	e.patchString("start_date", p.StartDate, true, pattern(datePattern, "date (YYYY-MM-DD)"))
	e.patchString("end_date", p.EndDate, true, pattern(datePattern, "date (YYYY-MM-DD)"))
	patchEnum(&e, "status", p.Status, models.ProjectStatuses)
	return e.err()
}

func TimeEntryInput(in models.TimeEntryInput) error {
	var e Errors
	e.required("project_id", in.ProjectID, nonEmpty())
	e.required("description", in.Description, length(1, 500))
	if in.Duration == nil {
		e.add("duration", msgRequired)
	} else {
		e.atLeastOne("duration", *in.Duration)
	}
	e.required("date", in.Date, pattern(datePattern, "date (YYYY-MM-DD)"))
	return e.err()
}

func TimeEntryPatch(p models.TimeEntryPatch) error {
	var e Errors
	e.patchString("project_id", p.ProjectID, false, nonEmpty())
	e.patchString("description", p.Description, false, length(1, 500))
	if d, ok := patchNotNull(&e, "duration", p.Duration); ok {
		e.atLeastOne("duration", d)
	}
	e.patchString("date", p.Date, false, pattern(datePattern, "date (YYYY-MM-DD)"))
	patchNotNull(&e, "is_manual", p.IsManual)
	return e.err()
}

func InvoiceInput(in models.InvoiceInput) error {
	var e Errors
	e.required("client_id", in.ClientID, nonEmpty())
	e.required("project_id", in.ProjectID, nonEmpty())
	e.required("invoice_number", in.InvoiceNumber, length(1, 50))
	e.required("issue_date", in.IssueDate, pattern(datePattern, "date (YYYY-MM-DD)"))
	e.required("due_date", in.DueDate, pattern(datePattern, "date (YYYY-MM-DD)"))
	if in.TotalHours == nil {
		e.add("total_hours", msgRequired)
	} else {
		e.nonNegative("total_hours", *in.TotalHours)
	}
	if in.TotalAmount == nil {
		e.add("total_amount", msgRequired)
	} else {
		e.nonNegative("total_amount", *in.TotalAmount)
	}
	e.nullable("currency", in.Currency, pattern(currencyPattern, "ISO 4217 currency code"))
	if in.Status != nil {
		e.check("status", string(*in.Status), []stringRule{oneOf(models.InvoiceStatuses)})
	}
	e.nullable("custom_description", in.CustomDescription, length(0, 1000))
	return e.err()
}

func InvoicePatch(p models.InvoicePatch) error {
	var e Errors
	e.patchString("client_id", p.ClientID, false, nonEmpty())
	e.patchString("project_id", p.ProjectID, false, nonEmpty())
	e.patchString("invoice_number", p.InvoiceNumber, false, length(1, 50))
	e.patchString("issue_date", p.IssueDate, false, pattern(datePattern, "date (YYYY-MM-DD)"))
	e.patchString("due_date", p.DueDate, false, pattern(datePattern, "date (YYYY-MM-DD)"))
	if h, ok := patchNotNull(&e, "total_hours", p.TotalHours); ok {
		e.nonNegative("total_hours", h)
	}
	if a, ok := patchNotNull(&e, "total_amount", p.TotalAmount); ok {
		e.nonNegative("total_amount", a)
	}
	e.patchString("currency", p.Currency, false, pattern(currencyPattern, "ISO 4217 currency code"))
	patchEnum(&e, "status", p.Status, models.InvoiceStatuses)
	patchNotNull(&e, "time_entries", p.TimeEntries)
	e.patchString("custom_description", p.CustomDescription, true, length(0, 1000))
	return e.err()
}

func TimerStart(in models.TimerStartInput) error {
	var e Errors
	e.required("project_id", in.ProjectID, nonEmpty())
	e.required("description", in.Description, length(1, 500))
	return e.err()
}

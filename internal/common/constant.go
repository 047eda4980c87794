package common

// ResultCap bounds every list operation.
const ResultCap = 1000

// DateLayout is the calendar date format used by date-only fields.
const DateLayout = "2006-01-02"

// DefaultCurrency is applied when a project or invoice omits currency.
const DefaultCurrency = "EUR"

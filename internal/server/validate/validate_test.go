package validate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fields(t *testing.T, err error) []string {
	t.Helper()
	var ve Errors
	require.True(t, errors.As(err, &ve), "expected validate.Errors, got %v", err)
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fe.Field)
	}
	return out
}

func TestErrors_UnwrapsToValidation(t *testing.T) {
	err := ClientInput(models.ClientInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "name: field required")
}

func TestClientInput(t *testing.T) {
	tests := []struct {
		name    string
		in      models.ClientInput
		invalid []string
	}{
		{name: "ok", in: models.ClientInput{Name: ptr("Acme"), Email: ptr("a@b.co")}},
		{name: "missing", in: models.ClientInput{}, invalid: []string{"name", "email"}},
		{name: "empty name", in: models.ClientInput{Name: ptr(""), Email: ptr("a@b.co")}, invalid: []string{"name"}},
		{name: "bad email", in: models.ClientInput{Name: ptr("A"), Email: ptr("nope")}, invalid: []string{"email"}},
		{name: "long name", in: models.ClientInput{Name: ptr(strings.Repeat("x", 256)), Email: ptr("a@b.co")}, invalid: []string{"name"}},
		{name: "255 runes ok", in: models.ClientInput{Name: ptr(strings.Repeat("é", 255)), Email: ptr("a@b.co")}},
		{name: "long phone", in: models.ClientInput{Name: ptr("A"), Email: ptr("a@b.co"), Phone: ptr(strings.Repeat("1", 51))}, invalid: []string{"phone"}},
		{name: "long address", in: models.ClientInput{Name: ptr("A"), Email: ptr("a@b.co"), Address: ptr(strings.Repeat("a", 501))}, invalid: []string{"address"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClientInput(tt.in)
			if tt.invalid == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.invalid, fields(t, err))
		})
	}
}

func TestClientPatch_NullHandling(t *testing.T) {
	var p models.ClientPatch
	require.NoError(t, json.Unmarshal([]byte(`{"phone":null,"address":null}`), &p))
	assert.NoError(t, ClientPatch(p))

	p = models.ClientPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"email":null,"is_active":null}`), &p))
	assert.Equal(t, []string{"name", "email", "is_active"}, fields(t, ClientPatch(p)))
}

func TestClientPatch_EmptyIsValid(t *testing.T) {
	assert.NoError(t, ClientPatch(models.ClientPatch{}))
}

func TestProjectInput(t *testing.T) {
	valid := func() models.ProjectInput {
		return models.ProjectInput{
			Name:       ptr("Site"),
			ClientID:   ptr("c1"),
			HourlyRate: ptr(decimal.NewFromInt(50)),
		}
	}

	assert.NoError(t, ProjectInput(valid()))

	in := valid()
	in.HourlyRate = ptr(decimal.NewFromInt(-1))
	assert.Equal(t, []string{"hourly_rate"}, fields(t, ProjectInput(in)))

	in = valid()
	in.Currency = ptr("eur")
	assert.Equal(t, []string{"currency"}, fields(t, ProjectInput(in)))

	in = valid()
	in.StartDate = ptr("2024/01/01")
	in.EndDate = ptr("2023-01-01")
	assert.Equal(t, []string{"start_date"}, fields(t, ProjectInput(in)))

	in = valid()
	in.Status = ptr(models.ProjectStatus("paused"))
	assert.Equal(t, []string{"status"}, fields(t, ProjectInput(in)))

	assert.Equal(t, []string{"name", "client_id", "hourly_rate"}, fields(t, ProjectInput(models.ProjectInput{})))
}

func TestProjectInput_DateIsPatternOnly(t *testing.T) {
	in := models.ProjectInput{Name: ptr("p"), ClientID: ptr("c"), HourlyRate: ptr(decimal.Zero), StartDate: ptr("2024-13-45")}
	assert.NoError(t, ProjectInput(in))
}

func TestProjectPatch(t *testing.T) {
	var p models.ProjectPatch
	require.NoError(t, json.Unmarshal([]byte(`{"description":null,"start_date":null,"end_date":null}`), &p))
	assert.NoError(t, ProjectPatch(p))

	p = models.ProjectPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"on-hold","hourly_rate":-5,"currency":null}`), &p))
	assert.Equal(t, []string{"hourly_rate", "currency"}, fields(t, ProjectPatch(p)))
}

func TestTimeEntryInput(t *testing.T) {
	in := models.TimeEntryInput{
		ProjectID:   ptr("p"),
		Description: ptr("work"),
		Duration:    ptr(1),
		Date:        ptr("2024-01-15"),
	}
	assert.NoError(t, TimeEntryInput(in))

	in.Duration = ptr(0)
	assert.Equal(t, []string{"duration"}, fields(t, TimeEntryInput(in)))

	assert.Equal(t, []string{"project_id", "description", "duration", "date"}, fields(t, TimeEntryInput(models.TimeEntryInput{})))
}

func TestTimeEntryPatch(t *testing.T) {
	var p models.TimeEntryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"start_time":null,"end_time":null}`), &p))
	assert.NoError(t, TimeEntryPatch(p))

	p = models.TimeEntryPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"duration":0,"description":""}`), &p))
	assert.Equal(t, []string{"description", "duration"}, fields(t, TimeEntryPatch(p)))
}

func TestInvoiceInput(t *testing.T) {
	in := models.InvoiceInput{
		ClientID:      ptr("c"),
		ProjectID:     ptr("p"),
		InvoiceNumber: ptr("INV-1"),
		IssueDate:     ptr("2024-01-01"),
		DueDate:       ptr("2024-02-01"),
		TotalHours:    ptr(decimal.RequireFromString("10.5")),
		TotalAmount:   ptr(decimal.RequireFromString("525")),
	}
	assert.NoError(t, InvoiceInput(in))

	in.InvoiceNumber = ptr(strings.Repeat("9", 51))
	in.Status = ptr(models.InvoiceStatus("void"))
	assert.Equal(t, []string{"invoice_number", "status"}, fields(t, InvoiceInput(in)))
}

func TestInvoicePatch(t *testing.T) {
	var p models.InvoicePatch
	require.NoError(t, json.Unmarshal([]byte(`{"custom_description":null,"status":"paid"}`), &p))
	assert.NoError(t, InvoicePatch(p))

	p = models.InvoicePatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"time_entries":null,"total_amount":-1}`), &p))
	assert.Equal(t, []string{"total_amount", "time_entries"}, fields(t, InvoicePatch(p)))
}

func TestTimerStart(t *testing.T) {
	assert.NoError(t, TimerStart(models.TimerStartInput{ProjectID: ptr("p"), Description: ptr("x")}))
	assert.Equal(t, []string{"project_id", "description"}, fields(t, TimerStart(models.TimerStartInput{ProjectID: ptr("")})))
}

package attendance

import (
	"testing"

	"github.com/cmlabs-hris/student-attendance/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCheckInRequest_Validate(t *testing.T) {
	req := CheckInRequest{Identifier: strPtr(""), Name: strPtr("")}
	assert.NoError(t, req.Validate(), "empty values are accepted")

	req = CheckInRequest{}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, map[string]string{
		"identifier": "identifier field is required",
		"name":       "name field is required",
	}, errs.ToMap())
}

func TestCheckOutRequest_Validate(t *testing.T) {
	req := CheckOutRequest{Identifier: strPtr("101")}
	assert.NoError(t, req.Validate())

	req = CheckOutRequest{}
	var errs validator.ValidationErrors
	assert.ErrorAs(t, req.Validate(), &errs)
}

func TestNewRosterResponse(t *testing.T) {
	r, _ := CheckIn(Roster{}, "rec-1", "101", "Alice", baseTime)
	r, _ = CheckIn(r, "rec-2", "102", "Bob", baseTime)

	resp := NewRosterResponse(r)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "Alice", resp.Records[0].Name)
	assert.Equal(t, "102", resp.Records[1].Identifier)
	assert.Nil(t, resp.Records[1].CheckOutTime)
	assert.Equal(t, CountersResponse{Present: 2, CheckedIn: 2, CheckedOut: 0}, resp.Counters)

	empty := NewRosterResponse(Roster{})
	assert.NotNil(t, empty.Records)
	assert.Empty(t, empty.Records)
}

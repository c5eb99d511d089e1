package parser_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"cs-balancer/balancer"
	customerrors "cs-balancer/errors"
	"cs-balancer/models"
	"cs-balancer/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input        string
		expectedData *models.Input
	}{
		"ValidInput_AllKinds": {
			input: `
# Representatives
cs, 1, 60
cs, 2, 20
# Customers
customer, 1, 90
customer, 2, 20
away, 2
`,
			expectedData: &models.Input{
				CustomerSuccess: []models.CustomerSuccess{
					{ID: 1, Score: 60},
					{ID: 2, Score: 20},
				},
				Customers: []models.Customer{
					{ID: 1, Score: 90},
					{ID: 2, Score: 20},
				},
				Away: []int{2},
			},
		},
		"MixedCaseKinds_MultipleAwayIDs": {
			input: `CS, 3, 95
Customer, 7, 10
AWAY, 3, 4, 5
`,
			expectedData: &models.Input{
				CustomerSuccess: []models.CustomerSuccess{{ID: 3, Score: 95}},
				Customers:       []models.Customer{{ID: 7, Score: 10}},
				Away:            []int{3, 4, 5},
			},
		},
		"OnlyComments": {
			input: `
# nothing to balance
`,
			expectedData: &models.Input{},
		},
		"AwayMayReferenceUnknownIDs": {
			input: `cs, 1, 10
away, 99
`,
			expectedData: &models.Input{
				CustomerSuccess: []models.CustomerSuccess{{ID: 1, Score: 10}},
				Away:            []int{99},
			},
		},
		"CustomerIDZeroAllowed": {
			input: `customer, 0, 15
customer, -3, 25
`,
			expectedData: &models.Input{
				Customers: []models.Customer{{ID: 0, Score: 15}, {ID: -3, Score: 25}},
			},
		},
		"ZeroScoreAllowed": {
			input: `customer, 1, 0
`,
			expectedData: &models.Input{
				Customers: []models.Customer{{ID: 1, Score: 0}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedError error
		expectedLine  int
	}{
		"UnknownKind": {
			input:         "manager, 1, 10\n",
			expectedError: customerrors.ErrUnknownRecordKind,
			expectedLine:  1,
		},
		"MissingScore": {
			input:         "cs, 1, 10\ncs, 2\n",
			expectedError: customerrors.ErrInvalidFieldCount,
			expectedLine:  2,
		},
		"TooManyFields": {
			input:         "customer, 1, 10, 5\n",
			expectedError: customerrors.ErrInvalidFieldCount,
			expectedLine:  1,
		},
		"AwayWithoutIDs": {
			input:         "away\n",
			expectedError: customerrors.ErrInvalidFieldCount,
			expectedLine:  1,
		},
		"NonNumericID": {
			input:         "cs, one, 10\n",
			expectedError: customerrors.ErrInvalidID,
			expectedLine:  1,
		},
		"NonNumericScore": {
			input:         "customer, 1, high\n",
			expectedError: customerrors.ErrInvalidScore,
			expectedLine:  1,
		},
		"ZeroIDReserved": {
			input:         "# header\ncs, 0, 10\n",
			expectedError: customerrors.ErrInvalidID,
			expectedLine:  2,
		},
		"NegativeScore": {
			input:         "cs, 1, -5\n",
			expectedError: customerrors.ErrInvalidScore,
			expectedLine:  1,
		},
		"NegativeAwayID": {
			input:         "away, 1, -2\n",
			expectedError: customerrors.ErrInvalidID,
			expectedLine:  1,
		},
		"DuplicateCustomerSuccess": {
			input:         "cs, 1, 10\ncustomer, 1, 5\ncs, 1, 20\n",
			expectedError: customerrors.ErrDuplicateID,
			expectedLine:  3,
		},
		"EmptyKind": {
			input:         ", 1, 10\n",
			expectedError: customerrors.ErrEmptyRecord,
			expectedLine:  1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)

			var parseErr *customerrors.ParseError
			require.True(t, errors.As(err, &parseErr), "expected a ParseError, got %T", err)
			assert.Equal(t, tt.expectedLine, parseErr.Line)
		})
	}
}

func TestParse_DuplicateCustomersAllowed(t *testing.T) {
	data, err := parser.Parse(strings.NewReader("customer, 1, 10\ncustomer, 1, 20\n"))
	require.NoError(t, err)
	assert.Len(t, data.Customers, 2)
}

func TestParse_File(t *testing.T) {
	file, err := os.Open("testdata/scenario1.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := parser.Parse(file)
	require.NoError(t, err)

	assert.Len(t, data.CustomerSuccess, 4)
	assert.Len(t, data.Customers, 6)
	assert.Equal(t, []int{2, 4}, data.Away)
	assert.Equal(t, 1, balancer.Balance(*data).WinnerID)
}

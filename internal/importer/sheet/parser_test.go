package sheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/importer/sheet"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_Pipeline(t *testing.T) {
	csv := `Pipeline export;2026-10-01

Company Name;Annual Revenue;Deal Owner;Priority;SDE;Description
Acme Widgets;1.250.000,00;Dana;High;310.000,50;Regional distributor
Borealis Labs;980.000;Sam;;;
`

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Acme Widgets", params[0].CompanyName)
	assert.True(t, dec("1250000").Equal(params[0].Revenue))
	assert.Equal(t, "Dana", params[0].Owner)
	assert.Equal(t, deal.PriorityHigh, params[0].Priority)
	assert.True(t, params[0].SDE.Valid)
	assert.True(t, dec("310000.50").Equal(params[0].SDE.Decimal))
	assert.Equal(t, "Regional distributor", params[0].Description)

	assert.Equal(t, "Borealis Labs", params[1].CompanyName)
	assert.True(t, dec("980000").Equal(params[1].Revenue))
	assert.Empty(t, params[1].Priority)
	assert.False(t, params[1].SDE.Valid)
}

func TestParser_SimpleCommaSeparated(t *testing.T) {
	csv := "company,revenue,owner,notes\n" +
		"Cobalt Freight,\"$2,400,000.00\",Lee,Family owned\n" +
		"Delta Dental,750000,Lee,\n"

	p := sheet.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.True(t, dec("2400000").Equal(params[0].Revenue))
	assert.Equal(t, "Family owned", params[0].Description)
	assert.True(t, dec("750000").Equal(params[1].Revenue))
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Company;Revenue;Owner\nCafé Central;10,50;José\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := sheet.NewParser()
	params, err := p.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Café Central", params[0].CompanyName)
	assert.Equal(t, "José", params[0].Owner)
	assert.True(t, dec("10.50").Equal(params[0].Revenue))
}

func TestParser_AmountFormats(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"1.234.567,89", "1234567.89"},
		{"1,234,567.89", "1234567.89"},
		{"1234567.89", "1234567.89"},
		{"1,25", "1.25"},
		{"1,250", "1250"},
		{"1.250", "1250"},
		{"99.5", "99.5"},
		{"€ 500.000", "500000"},
		{"1.000.000", "1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			csv := "Company;Revenue;Owner\nAcme;" + tt.cell + ";Dana\n"

			params, err := sheet.NewParser().Parse(strings.NewReader(csv))
			require.NoError(t, err)
			require.Len(t, params, 1)

			assert.True(t, dec(tt.want).Equal(params[0].Revenue), "got %s", params[0].Revenue)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{"EmptyFile", "", "no matching deal sheet"},
		{"InvalidRevenue", "Company;Revenue;Owner\nAcme;n/a;Dana\n", "row 2: invalid revenue"},
		{"MissingOwner", "Company;Revenue;Owner\nAcme;100;\n", "row 2: missing owner"},
		{"UnknownPriority", "Company;Revenue;Owner;Priority\nAcme;100;Dana;urgent\n", "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sheet.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	params, err := sheet.NewParser().Parse(strings.NewReader("Company;Revenue;Owner"))
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParser_SkipsRowsWithoutCompany(t *testing.T) {
	csv := `Company;Revenue;Owner
Acme;100;Dana
;;
;1.100;
`

	params, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
}

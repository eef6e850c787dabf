package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	enc "github.com/MrJamesThe3rd/dealboard/internal/encoding"
)

// Parser reads spreadsheet exports of prospective deals. The delimiter and
// column layout are detected from the header row.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]deal.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectComma(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching deal sheet found: expected company, revenue and owner columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// detectComma picks ';' when the first line has more semicolons than commas.
func detectComma(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) of(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows builds create params from data rows. Rows without a company are
// blank or footer lines and are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]deal.CreateParams, error) {
	var (
		companyIdx  = cols.of(p.CompanyCol)
		revenueIdx  = cols.of(p.RevenueCol)
		ownerIdx    = cols.of(p.OwnerCol)
		priorityIdx = cols.of(p.PriorityCol)
		sdeIdx      = cols.of(p.SDECol)
		descIdx     = cols.of(p.DescCol)
	)

	var params []deal.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		company := cellValue(row, companyIdx)
		if company == "" {
			continue
		}

		revenue, err := parseAmount(cellValue(row, revenueIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid revenue: %w", rowNum, err)
		}

		owner := cellValue(row, ownerIdx)
		if owner == "" {
			return nil, fmt.Errorf("row %d: missing owner", rowNum)
		}

		priority, err := parsePriority(cellValue(row, priorityIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		cp := deal.CreateParams{
			CompanyName: company,
			Revenue:     revenue,
			Owner:       owner,
			Priority:    priority,
			Description: cellValue(row, descIdx),
		}

		if s := cellValue(row, sdeIdx); s != "" {
			sde, err := parseAmount(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid sde: %w", rowNum, err)
			}

			cp.SDE = decimal.NewNullDecimal(sde)
		}

		params = append(params, cp)
	}

	return params, nil
}

// parsePriority accepts any casing. An empty cell leaves the default.
func parsePriority(s string) (deal.Priority, error) {
	if s == "" {
		return "", nil
	}

	return deal.ParsePriority(strings.ToLower(s))
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

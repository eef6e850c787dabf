// Package api defines the JSON wire types shared by the REST handlers and the
// client.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/activity"
	"github.com/MrJamesThe3rd/dealboard/internal/checklist"
	"github.com/MrJamesThe3rd/dealboard/internal/contact"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
	"github.com/MrJamesThe3rd/dealboard/internal/match"
	"github.com/MrJamesThe3rd/dealboard/internal/party"
)

type Deal struct {
	ID              uuid.UUID           `json:"id"`
	CompanyName     string              `json:"companyName"`
	Revenue         decimal.Decimal     `json:"revenue"`
	SDE             decimal.NullDecimal `json:"sde"`
	ValuationMin    decimal.NullDecimal `json:"valuationMin"`
	ValuationMax    decimal.NullDecimal `json:"valuationMax"`
	SDEMultiple     decimal.NullDecimal `json:"sdeMultiple"`
	RevenueMultiple decimal.NullDecimal `json:"revenueMultiple"`
	Commission      decimal.NullDecimal `json:"commission"`
	Stage           deal.Stage          `json:"stage"`
	Priority        deal.Priority       `json:"priority"`
	Description     string              `json:"description,omitempty"`
	Notes           string              `json:"notes"`
	NextStepDays    *int                `json:"nextStepDays"`
	Touches         int                 `json:"touches"`
	AgeInStage      int                 `json:"ageInStage"`
	HealthScore     int                 `json:"healthScore"`
	Owner           string              `json:"owner"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       *time.Time          `json:"updatedAt,omitempty"`
}

func FromDeal(d *deal.Deal) Deal {
	return Deal{
		ID:              d.ID,
		CompanyName:     d.CompanyName,
		Revenue:         d.Revenue,
		SDE:             d.SDE,
		ValuationMin:    d.ValuationMin,
		ValuationMax:    d.ValuationMax,
		SDEMultiple:     d.SDEMultiple,
		RevenueMultiple: d.RevenueMultiple,
		Commission:      d.Commission,
		Stage:           d.Stage,
		Priority:        d.Priority,
		Description:     d.Description,
		Notes:           d.Notes,
		NextStepDays:    d.NextStepDays,
		Touches:         d.Touches,
		AgeInStage:      d.AgeInStage,
		HealthScore:     d.HealthScore,
		Owner:           d.Owner,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func FromDeals(ds []*deal.Deal) []Deal {
	out := make([]Deal, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDeal(d))
	}

	return out
}

type CreateDealRequest struct {
	CompanyName     string              `json:"companyName"`
	Revenue         decimal.Decimal     `json:"revenue"`
	SDE             decimal.NullDecimal `json:"sde"`
	ValuationMin    decimal.NullDecimal `json:"valuationMin"`
	ValuationMax    decimal.NullDecimal `json:"valuationMax"`
	SDEMultiple     decimal.NullDecimal `json:"sdeMultiple"`
	RevenueMultiple decimal.NullDecimal `json:"revenueMultiple"`
	Commission      decimal.NullDecimal `json:"commission"`
	Priority        deal.Priority       `json:"priority,omitempty"`
	Description     string              `json:"description,omitempty"`
	NextStepDays    *int                `json:"nextStepDays,omitempty"`
	Owner           string              `json:"owner"`
}

func (r CreateDealRequest) Params() deal.CreateParams {
	return deal.CreateParams{
		CompanyName:     r.CompanyName,
		Revenue:         r.Revenue,
		SDE:             r.SDE,
		ValuationMin:    r.ValuationMin,
		ValuationMax:    r.ValuationMax,
		SDEMultiple:     r.SDEMultiple,
		RevenueMultiple: r.RevenueMultiple,
		Commission:      r.Commission,
		Priority:        r.Priority,
		Description:     r.Description,
		NextStepDays:    r.NextStepDays,
		Owner:           r.Owner,
	}
}

// UpdateDealRequest is a partial update. Absent fields are left untouched; a
// nullable money field is cleared by sending null.
type UpdateDealRequest struct {
	CompanyName     *string              `json:"companyName,omitempty"`
	Revenue         *decimal.Decimal     `json:"revenue,omitempty"`
	SDE             *decimal.NullDecimal `json:"sde,omitempty"`
	ValuationMin    *decimal.NullDecimal `json:"valuationMin,omitempty"`
	ValuationMax    *decimal.NullDecimal `json:"valuationMax,omitempty"`
	SDEMultiple     *decimal.NullDecimal `json:"sdeMultiple,omitempty"`
	RevenueMultiple *decimal.NullDecimal `json:"revenueMultiple,omitempty"`
	Commission      *decimal.NullDecimal `json:"commission,omitempty"`
	Stage           *deal.Stage          `json:"stage,omitempty"`
	Priority        *deal.Priority       `json:"priority,omitempty"`
	Description     *string              `json:"description,omitempty"`
	NextStepDays    *int                 `json:"nextStepDays,omitempty"`
	HealthScore     *int                 `json:"healthScore,omitempty"`
	Owner           *string              `json:"owner,omitempty"`
}

func (r UpdateDealRequest) Params() deal.UpdateParams {
	return deal.UpdateParams{
		CompanyName:     r.CompanyName,
		Revenue:         r.Revenue,
		SDE:             r.SDE,
		ValuationMin:    r.ValuationMin,
		ValuationMax:    r.ValuationMax,
		SDEMultiple:     r.SDEMultiple,
		RevenueMultiple: r.RevenueMultiple,
		Commission:      r.Commission,
		Stage:           r.Stage,
		Priority:        r.Priority,
		Description:     r.Description,
		NextStepDays:    r.NextStepDays,
		HealthScore:     r.HealthScore,
		Owner:           r.Owner,
	}
}

type MoveStageRequest struct {
	Stage deal.Stage `json:"stage"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type Summary struct {
	TotalPipelineValue decimal.Decimal                `json:"totalPipelineValue"`
	TotalDeals         int                            `json:"totalDeals"`
	ActiveDeals        int                            `json:"activeDeals"`
	SoldDeals          int                            `json:"soldDeals"`
	AverageDealSize    decimal.Decimal                `json:"averageDealSize"`
	ConversionRate     decimal.Decimal                `json:"conversionRate"`
	AverageAgeInStage  decimal.Decimal                `json:"averageAgeInStage"`
	DealsByStage       map[deal.Stage]int             `json:"dealsByStage"`
	RevenueByStage     map[deal.Stage]decimal.Decimal `json:"revenueByStage"`
}

func FromSummary(s deal.Summary) Summary {
	return Summary{
		TotalPipelineValue: s.TotalPipelineValue,
		TotalDeals:         s.TotalDeals,
		ActiveDeals:        s.ActiveDeals(),
		SoldDeals:          s.SoldDeals,
		AverageDealSize:    s.AverageDealSize,
		ConversionRate:     s.ConversionRate,
		AverageAgeInStage:  s.AverageAgeInStage,
		DealsByStage:       s.DealsByStage,
		RevenueByStage:     s.RevenueByStage,
	}
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Deals    []Deal   `json:"deals"`
	Skipped  []string `json:"skipped"`
}

func FromImportResult(r *deal.ImportResult) ImportResult {
	out := ImportResult{
		Imported: len(r.Imported),
		Deals:    FromDeals(r.Imported),
		Skipped:  make([]string, 0, len(r.Skipped)),
	}

	for _, p := range r.Skipped {
		out.Skipped = append(out.Skipped, p.CompanyName)
	}

	return out
}

type Party struct {
	ID                   uuid.UUID           `json:"id"`
	Name                 string              `json:"name"`
	TargetAcquisitionMin *int                `json:"targetAcquisitionMin"`
	TargetAcquisitionMax *int                `json:"targetAcquisitionMax"`
	BudgetMin            decimal.NullDecimal `json:"budgetMin"`
	BudgetMax            decimal.NullDecimal `json:"budgetMax"`
	Timeline             string              `json:"timeline,omitempty"`
	Status               string              `json:"status"`
	Notes                string              `json:"notes"`
	TargetIndustries     []string            `json:"targetIndustries"`
	Operational          bool                `json:"operational"`
	CreatedAt            time.Time           `json:"createdAt"`
}

func FromParty(p *party.BuyingParty) Party {
	industries := p.TargetIndustries
	if industries == nil {
		industries = []string{}
	}

	return Party{
		ID:                   p.ID,
		Name:                 p.Name,
		TargetAcquisitionMin: p.TargetAcquisitionMin,
		TargetAcquisitionMax: p.TargetAcquisitionMax,
		BudgetMin:            p.BudgetMin,
		BudgetMax:            p.BudgetMax,
		Timeline:             p.Timeline,
		Status:               p.Status,
		Notes:                p.Notes,
		TargetIndustries:     industries,
		Operational:          p.Operational,
		CreatedAt:            p.CreatedAt,
	}
}

func FromParties(ps []*party.BuyingParty) []Party {
	out := make([]Party, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromParty(p))
	}

	return out
}

type CreatePartyRequest struct {
	Name                 string              `json:"name"`
	TargetAcquisitionMin *int                `json:"targetAcquisitionMin,omitempty"`
	TargetAcquisitionMax *int                `json:"targetAcquisitionMax,omitempty"`
	BudgetMin            decimal.NullDecimal `json:"budgetMin"`
	BudgetMax            decimal.NullDecimal `json:"budgetMax"`
	Timeline             string              `json:"timeline,omitempty"`
	Status               string              `json:"status,omitempty"`
	TargetIndustries     []string            `json:"targetIndustries,omitempty"`
	Operational          bool                `json:"operational"`
}

func (r CreatePartyRequest) Params() party.CreateParams {
	return party.CreateParams{
		Name:                 r.Name,
		TargetAcquisitionMin: r.TargetAcquisitionMin,
		TargetAcquisitionMax: r.TargetAcquisitionMax,
		BudgetMin:            r.BudgetMin,
		BudgetMax:            r.BudgetMax,
		Timeline:             r.Timeline,
		Status:               r.Status,
		TargetIndustries:     r.TargetIndustries,
		Operational:          r.Operational,
	}
}

type UpdatePartyRequest struct {
	Name                 *string              `json:"name,omitempty"`
	TargetAcquisitionMin *int                 `json:"targetAcquisitionMin,omitempty"`
	TargetAcquisitionMax *int                 `json:"targetAcquisitionMax,omitempty"`
	BudgetMin            *decimal.NullDecimal `json:"budgetMin,omitempty"`
	BudgetMax            *decimal.NullDecimal `json:"budgetMax,omitempty"`
	Timeline             *string              `json:"timeline,omitempty"`
	Status               *string              `json:"status,omitempty"`
	TargetIndustries     []string             `json:"targetIndustries,omitempty"`
	Operational          *bool                `json:"operational,omitempty"`
}

func (r UpdatePartyRequest) Params() party.UpdateParams {
	return party.UpdateParams{
		Name:                 r.Name,
		TargetAcquisitionMin: r.TargetAcquisitionMin,
		TargetAcquisitionMax: r.TargetAcquisitionMax,
		BudgetMin:            r.BudgetMin,
		BudgetMax:            r.BudgetMax,
		Timeline:             r.Timeline,
		Status:               r.Status,
		TargetIndustries:     r.TargetIndustries,
		Operational:          r.Operational,
	}
}

// Owner is the wire form of entity.Ref.
type Owner struct {
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
}

func FromRef(r entity.Ref) Owner {
	return Owner{EntityType: r.Kind.String(), EntityID: r.ID}
}

func (o Owner) Ref() (entity.Ref, error) {
	kind, err := entity.ParseKind(o.EntityType)
	if err != nil {
		return entity.Ref{}, err
	}

	return entity.Ref{Kind: kind, ID: o.EntityID}, nil
}

type Contact struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
	Owner
}

func FromContact(c *contact.Contact) Contact {
	return Contact{
		ID:    c.ID,
		Name:  c.Name,
		Role:  c.Role,
		Email: c.Email,
		Phone: c.Phone,
		Owner: FromRef(c.Owner),
	}
}

func FromContacts(cs []*contact.Contact) []Contact {
	out := make([]Contact, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromContact(c))
	}

	return out
}

type CreateContactRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Owner
}

type Activity struct {
	ID          uuid.UUID       `json:"id"`
	Type        activity.Type   `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      activity.Status `json:"status"`
	AssignedTo  string          `json:"assignedTo,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Owner
}

func FromActivity(a *activity.Activity) Activity {
	return Activity{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status,
		AssignedTo:  a.AssignedTo,
		DueDate:     a.DueDate,
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
		Owner:       FromRef(a.Owner),
	}
}

func FromActivities(as []*activity.Activity) []Activity {
	out := make([]Activity, 0, len(as))
	for _, a := range as {
		out = append(out, FromActivity(a))
	}

	return out
}

type CreateActivityRequest struct {
	Type        activity.Type   `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      activity.Status `json:"status,omitempty"`
	AssignedTo  string          `json:"assignedTo,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Owner
}

type Preset struct {
	Key    string          `json:"key"`
	Type   activity.Type   `json:"type"`
	Title  string          `json:"title"`
	Status activity.Status `json:"status"`
}

func FromPresets(ps []activity.Preset) []Preset {
	out := make([]Preset, 0, len(ps))
	for _, p := range ps {
		out = append(out, Preset{Key: p.Key, Type: p.Type, Title: p.Title, Status: p.Status})
	}

	return out
}

type Document struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Status    document.Status `json:"status"`
	URL       string          `json:"url,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Owner
}

func FromDocument(d *document.Document) *Document {
	if d == nil {
		return nil
	}

	return &Document{
		ID:        d.ID,
		Name:      d.Name,
		Status:    d.Status,
		URL:       d.URL,
		CreatedAt: d.CreatedAt,
		Owner:     FromRef(d.Owner),
	}
}

func FromDocuments(ds []*document.Document) []Document {
	out := make([]Document, 0, len(ds))
	for _, d := range ds {
		out = append(out, *FromDocument(d))
	}

	return out
}

type CreateDocumentRequest struct {
	Name   string          `json:"name"`
	Status document.Status `json:"status,omitempty"`
	URL    string          `json:"url,omitempty"`
	Owner
}

type DocumentStatusRequest struct {
	Status document.Status `json:"status"`
}

type PinnedDocuments struct {
	ValuationWorkbook *Document `json:"valuationWorkbook"`
	ValuationDeck     *Document `json:"valuationDeck"`
	CIM               *Document `json:"cim"`
	NDA               *Document `json:"nda"`
}

func FromPinned(p document.Pinned) PinnedDocuments {
	return PinnedDocuments{
		ValuationWorkbook: FromDocument(p.ValuationWorkbook),
		ValuationDeck:     FromDocument(p.ValuationDeck),
		CIM:               FromDocument(p.CIM),
		NDA:               FromDocument(p.NDA),
	}
}

type Match struct {
	ID                uuid.UUID           `json:"id"`
	DealID            uuid.UUID           `json:"dealId"`
	BuyingPartyID     uuid.UUID           `json:"buyingPartyId"`
	TargetAcquisition *int                `json:"targetAcquisition"`
	Budget            decimal.NullDecimal `json:"budget"`
	Status            string              `json:"status"`
	Stage             match.Stage         `json:"stage"`
	CreatedAt         time.Time           `json:"createdAt"`
}

func FromMatch(m *match.Match) Match {
	return Match{
		ID:                m.ID,
		DealID:            m.DealID,
		BuyingPartyID:     m.BuyingPartyID,
		TargetAcquisition: m.TargetAcquisition,
		Budget:            m.Budget,
		Status:            m.Status,
		Stage:             m.Stage,
		CreatedAt:         m.CreatedAt,
	}
}

func FromMatches(ms []*match.Match) []Match {
	out := make([]Match, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMatch(m))
	}

	return out
}

type CreateMatchRequest struct {
	DealID            uuid.UUID           `json:"dealId"`
	BuyingPartyID     uuid.UUID           `json:"buyingPartyId"`
	TargetAcquisition *int                `json:"targetAcquisition,omitempty"`
	Budget            decimal.NullDecimal `json:"budget"`
	Status            string              `json:"status,omitempty"`
	Stage             match.Stage         `json:"stage,omitempty"`
}

func (r CreateMatchRequest) Params() match.CreateParams {
	return match.CreateParams{
		DealID:            r.DealID,
		BuyingPartyID:     r.BuyingPartyID,
		TargetAcquisition: r.TargetAcquisition,
		Budget:            r.Budget,
		Status:            r.Status,
		Stage:             r.Stage,
	}
}

type UpdateMatchRequest struct {
	Stage  *match.Stage `json:"stage,omitempty"`
	Status *string      `json:"status,omitempty"`
}

type BuyerRow struct {
	Match Match `json:"match"`
	Party Party `json:"party"`
}

func FromBuyerRows(rows []*match.BuyerRow) []BuyerRow {
	out := make([]BuyerRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BuyerRow{Match: FromMatch(r.Match), Party: FromParty(r.Party)})
	}

	return out
}

type DealRow struct {
	Match Match `json:"match"`
	Deal  Deal  `json:"deal"`
}

func FromDealRows(rows []*match.DealRow) []DealRow {
	out := make([]DealRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, DealRow{Match: FromMatch(r.Match), Deal: FromDeal(r.Deal)})
	}

	return out
}

type ChecklistItem struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Done  bool       `json:"done"`
	Note  string     `json:"note,omitempty"`
	TS    *time.Time `json:"ts,omitempty"`
}

func FromChecklist(items []checklist.Item) []ChecklistItem {
	out := make([]ChecklistItem, 0, len(items))
	for _, it := range items {
		out = append(out, ChecklistItem(it))
	}

	return out
}

func ToChecklist(items []ChecklistItem) []checklist.Item {
	out := make([]checklist.Item, 0, len(items))
	for _, it := range items {
		out = append(out, checklist.Item(it))
	}

	return out
}

type ChecklistRequest struct {
	Items []ChecklistItem `json:"items"`
}

type AddChecklistItemRequest struct {
	Label string `json:"label"`
}

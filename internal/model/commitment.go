package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PipelineStage is the fundraising stage of a commitment. Stages are ordered from
// first contact to closed; any stage may be reassigned to any other.
type PipelineStage int

const (
	StageOutreach PipelineStage = iota
	StageMeeting
	StageDiligence
	StageSoftCommit
	StageDocsSigned
	StageClosed
)

// PipelineStages lists every stage in canonical order.
var PipelineStages = []PipelineStage{
	StageOutreach, StageMeeting, StageDiligence, StageSoftCommit, StageDocsSigned, StageClosed,
}

var stageIDs = [...]string{"outreach", "meeting", "diligence", "soft", "signed", "closed"}

var stageLabels = [...]string{"Outreach", "Meeting", "Diligence", "Soft Commit", "Docs Signed", "Closed"}

// ParsePipelineStage converts a stage id ("outreach", "soft", ...) into a PipelineStage.
func ParsePipelineStage(id string) (PipelineStage, error) {
	for i, s := range stageIDs {
		if s == id {
			return PipelineStage(i), nil
		}
	}
	return StageOutreach, fmt.Errorf("unknown pipeline stage: %q", id)
}

// Valid reports whether s is within the known range.
func (s PipelineStage) Valid() bool {
	return s >= StageOutreach && s <= StageClosed
}

// String returns the stage id.
func (s PipelineStage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("PipelineStage(%d)", int(s))
	}
	return stageIDs[s]
}

// Label returns the human readable stage name.
func (s PipelineStage) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return stageLabels[s]
}

func (s PipelineStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PipelineStage) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	parsed, err := ParsePipelineStage(id)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the stage id.
func (s PipelineStage) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid pipeline stage %d", int(s))
	}
	return s.String(), nil
}

// Scan reads a stage id column.
func (s *PipelineStage) Scan(src any) error {
	var id string
	switch v := src.(type) {
	case string:
		id = v
	case []byte:
		id = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PipelineStage", src)
	}
	parsed, err := ParsePipelineStage(id)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DistributionType describes the nature of a cash distribution to an LP.
type DistributionType string

const (
	DistributionReturnOfCapital DistributionType = "Return of Capital"
	DistributionCarry           DistributionType = "Carry Distribution"
	DistributionIncome          DistributionType = "Income"
	DistributionOther           DistributionType = "Other"
)

// Valid reports whether t is a known distribution type.
func (t DistributionType) Valid() bool {
	switch t {
	case DistributionReturnOfCapital, DistributionCarry, DistributionIncome, DistributionOther:
		return true
	}
	return false
}

// Distribution is a cash payment from a fund back to one LP.
type Distribution struct {
	ID           string           `json:"id"`
	CommitmentID string           `json:"commitmentId"`
	Date         time.Time        `json:"date"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         DistributionType `json:"type"`
}

// Commitment is one investor's position in one fund.
// InvestorName and InvestorFirm are joined from the investor table for identity matching.
type Commitment struct {
	ID               string          `json:"id"`
	InvestorID       string          `json:"investorId"`
	InvestorName     string          `json:"investorName"`
	InvestorFirm     string          `json:"investorFirm"`
	FundID           string          `json:"fundId"`
	Stage            PipelineStage   `json:"stage"`
	CommitmentAmount decimal.Decimal `json:"commitmentAmount"`
	FundedAmount     decimal.Decimal `json:"fundedAmount"`
	CurrentNAV       decimal.Decimal `json:"currentNav"`
	Distributions    []Distribution  `json:"distributions"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// TotalDistributions sums every distribution paid on the commitment.
func (c Commitment) TotalDistributions() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.Distributions {
		total = total.Add(d.Amount)
	}
	return total
}

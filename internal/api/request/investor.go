package request

type CreateInvestorRequest struct {
	DisplayName       string `json:"displayName"`
	FirmName          string `json:"firmName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Tier              string `json:"tier"`
	RelationshipOwner string `json:"relationshipOwner"`
}

type UpdateInvestorRequest struct {
	DisplayName       *string `json:"displayName,omitempty"`
	FirmName          *string `json:"firmName,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Tier              *string `json:"tier,omitempty"`
	RelationshipOwner *string `json:"relationshipOwner,omitempty"`
}

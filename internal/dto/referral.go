package dto

type RecordReferralRequestDTO struct {
	ReferrerHandle string `json:"referrer_handle" example:"100001"`
	RefereeHandle  string `json:"referee_handle" example:"100002"`
}

type RecordReferralResponseDTO struct {
	BonusIssued   int `json:"bonus_issued" example:"1"`
	ReferralCount int `json:"referral_count" example:"0"`
}

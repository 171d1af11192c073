package dto

import "github.com/google/uuid"

type TeamResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"member_ids"`
}

package models

import (
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// Project groups questionnaires answered by its representatives.
type Project struct {
	ID        id.ProjectID `json:"id"`
	Name      string       `json:"name"`
	OwnerID   id.UserID    `json:"owner_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// IsOwnedBy reports whether userID owns the project.
func (p *Project) IsOwnedBy(userID id.UserID) bool {
	return p != nil && !userID.IsNil() && p.OwnerID == userID
}

// Representative answers on behalf of a role within one project.
type Representative struct {
	ID        id.RepresentativeID `json:"id"`
	ProjectID id.ProjectID        `json:"project_id"`
	UserID    id.UserID           `json:"user_id"`
	RoleIDs   []id.RoleID         `json:"role_ids"`
	JoinedAt  time.Time           `json:"joined_at"`
}

// BelongsTo reports whether the representative is part of the given project.
func (r *Representative) BelongsTo(projectID id.ProjectID) bool {
	return r != nil && r.ProjectID == projectID
}

package service

import (
	"context"
	"errors"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// ScopeKind says how a caller relates to a project.
type ScopeKind int

const (
	ScopeAdmin ScopeKind = iota + 1
	ScopeOwner
	ScopeRepresentative
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAdmin:
		return "admin"
	case ScopeOwner:
		return "owner"
	case ScopeRepresentative:
		return "representative"
	default:
		return "unknown"
	}
}

// AccessScope selects the document a caller works on. RepresentativeID is
// set only for ScopeRepresentative; admins and owners target the shared document.
type AccessScope struct {
	Kind             ScopeKind
	RepresentativeID *id.RepresentativeID
}

// CanList reports whether the scope may read every document of a questionnaire.
func (s AccessScope) CanList() bool {
	return s.Kind == ScopeAdmin || s.Kind == ScopeOwner
}

// ResolveScope maps caller to its scope within projectID. Admin wins over
// owner, owner over representative.
func (s *Service) ResolveScope(ctx context.Context, caller requestcontext.CallerInfo, projectID id.ProjectID) (AccessScope, error) {
	if caller.Admin {
		return AccessScope{Kind: ScopeAdmin}, nil
	}
	if !caller.Authenticated() {
		return AccessScope{}, dErrors.New(dErrors.CodeUnauthorized, "caller is not authenticated")
	}

	owner, err := s.projects.IsOwner(ctx, caller.UserID, projectID)
	if err != nil {
		return AccessScope{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check project ownership")
	}
	if owner {
		return AccessScope{Kind: ScopeOwner}, nil
	}

	rep, err := s.projects.RepresentativeOf(ctx, caller.UserID, projectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return AccessScope{}, models.ErrRepresentativeNotFound
		}
		return AccessScope{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load representative")
	}
	repID := rep.ID
	return AccessScope{Kind: ScopeRepresentative, RepresentativeID: &repID}, nil
}

// EnsureRepresentativeBelongsToProject fails with ErrRepresentativeNotFound
// unless representativeID exists and is part of projectID.
func (s *Service) EnsureRepresentativeBelongsToProject(ctx context.Context, representativeID id.RepresentativeID, projectID id.ProjectID) error {
	rep, err := s.projects.FindRepresentative(ctx, representativeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.ErrRepresentativeNotFound
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load representative")
	}
	if !rep.BelongsTo(projectID) {
		return models.ErrRepresentativeNotFound
	}
	return nil
}

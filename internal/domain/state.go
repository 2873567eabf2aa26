package domain

// RelationshipKind classifies a user's current relationship to a repository
type RelationshipKind string

const (
	RelationshipCollaborator  RelationshipKind = "active_collaborator"
	RelationshipPendingInvite RelationshipKind = "pending_invitation"
	RelationshipNone          RelationshipKind = "none"
)

// CollaboratorState is the result of probing a (repository, username) pair.
// InvitationID is set only when Kind is RelationshipPendingInvite.
type CollaboratorState struct {
	Kind         RelationshipKind
	InvitationID int64
}

// ActiveCollaborator returns the state for a current collaborator
func ActiveCollaborator() CollaboratorState {
	return CollaboratorState{Kind: RelationshipCollaborator}
}

// PendingInvitation returns the state for a pending invitation
func PendingInvitation(id int64) CollaboratorState {
	return CollaboratorState{Kind: RelationshipPendingInvite, InvitationID: id}
}

// NoRelationship returns the state for a user with no access or invitation
func NoRelationship() CollaboratorState {
	return CollaboratorState{Kind: RelationshipNone}
}

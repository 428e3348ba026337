package service

import "chatflow/client/internal/model"

// CanMutate reports whether new messages may be added to the session. Only
// ongoing sessions accept them.
func CanMutate(session *model.Session) bool {
	return session != nil && session.State == model.StateOngoing
}

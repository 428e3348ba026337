package service

// User-visible error banners.
const (
	msgIdentityMissing   = "User ID is missing. Please try logging out and back in."
	msgArchivedSend      = "Cannot send messages to archived chats. Please restore the chat first."
	msgSendFailed        = "Failed to send message. Please try again."
	msgSaveFailed        = "Failed to save messages"
	msgCreateFailed      = "Failed to create new session"
	msgSessionGone       = "This chat is no longer available. It may have been archived or deleted."
	msgSessionArchived   = "This chat has been archived. Please select an active chat or start a new one."
	msgLoadFailed        = "Error loading session"
	msgReactionFailed    = "Failed to update reaction. Please try again."
	msgRatingFailed      = "Failed to submit rating. Please try again."
	msgArchiveFailed     = "Failed to archive chat"
	msgRestoreFailed     = "Failed to restore chat"
	msgDeleteFailed      = "Failed to delete chat"
	msgRenameFailed      = "Failed to update title"
	msgGenerationErrText = "Sorry, I encountered an error while processing your request. Please try again."
)

const defaultSessionTitle = "New Chat"

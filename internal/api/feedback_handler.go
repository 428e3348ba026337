package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatflow/client/internal/interfaces"
	"chatflow/client/internal/model"
	"chatflow/client/internal/service"
)

// FeedbackHandler handles reactions and ratings on assistant messages.
type FeedbackHandler struct {
	service interfaces.FeedbackService
}

func NewFeedbackHandler(svc interfaces.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// HandleSetReaction godoc
// @Summary      React to a reply
// @Description  Sets a like or dislike on an assistant message; a null reaction clears it.
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        messageID  path  string           true  "Message ID"
// @Param        reaction   body  ReactionRequest  true  "Reaction"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/messages/{messageID}/reaction [put]
func (h *FeedbackHandler) HandleSetReaction(w http.ResponseWriter, r *http.Request) {
	var req ReactionRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}

	var reaction *model.Reaction
	if req.Reaction != nil {
		v := model.Reaction(*req.Reaction)
		reaction = &v
	}
	if err := h.service.SetReaction(r.Context(), chi.URLParam(r, "messageID"), reaction); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleSubmitRating godoc
// @Summary      Rate a reply
// @Description  Submits a 1-5 rating with an optional comment. The stored summary is refreshed afterwards.
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        messageID  path  string         true  "Message ID"
// @Param        rating     body  RatingRequest  true  "Rating"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/messages/{messageID}/rating [post]
func (h *FeedbackHandler) HandleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}

	err := h.service.SubmitRating(r.Context(), chi.URLParam(r, "messageID"), req.Rating, req.Comment, service.FeedbackType(req.FeedbackType))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"handyhub/backend/middleware"
	"handyhub/backend/models"
	"handyhub/backend/services"
)

// ReplyToTicket serves POST /tickets/{id}/replies: appends a reply to the
// ticket, emails the requester, and moves an Open ticket to In Progress.
func (h *Handler) ReplyToTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor := middleware.ActorFromRequest(r)

	var body struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		respondValidation(w, map[string]string{"message": "Reply message is required"})
		return
	}

	ticket, err := h.Store.Get(r.Context(), models.PathTickets, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if ticket == nil {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}

	repliedBy := actor.Name
	if repliedBy == "" {
		repliedBy = "admin"
	}

	reply := models.TicketReply{
		ID:        uuid.NewString(),
		Message:   body.Message,
		RepliedBy: repliedBy,
		Time:      time.Now().UTC().Format(time.RFC3339),
	}

	replies := append(existingReplies(ticket), reply)
	patch := map[string]interface{}{
		"replies":       replies,
		"lastUpdatedBy": services.Stamp(actor, "ticketReply"),
	}
	// First staff touch moves the ticket off Open
	if services.Derive(ticket, services.TicketRules) == models.TicketOpen {
		patch["status"] = models.TicketInProgress
	}

	if err := h.Store.Update(r.Context(), models.PathTickets, id, patch); err != nil {
		respondStoreError(w, err)
		return
	}

	// Email after the write: the reply is persisted even if the mail fails,
	// and the failure is surfaced so staff can re-send.
	if email := ticket.String("email"); email != "" {
		err := h.Notifier.SendTicketReply(r.Context(), email, ticket.String("name"),
			ticket.String("subject"), ticket.String("message"), body.Message, repliedBy)
		if err != nil {
			log.Printf("Failed to email ticket reply for %s: %v", id, err)
			respondJSON(w, http.StatusOK, map[string]interface{}{"reply": reply, "emailSent": false})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"reply": reply, "emailSent": true})
}

// existingReplies reads the ticket's replies list, tolerating records that
// have none yet.
func existingReplies(ticket models.Record) []interface{} {
	replies, ok := ticket["replies"].([]interface{})
	if !ok {
		return nil
	}
	return replies
}

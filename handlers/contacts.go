package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"contactbook/models"
)

func contactID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

// ListContacts lists all contacts
// @Summary      List contacts
// @Description  Get contact summaries in creation order, optionally only bookmarked ones.
// @Tags         contacts
// @Produce      json
// @Param        bookmarked  query     bool  false  "Return only bookmarked contacts"
// @Success      200  {object}  Response{data=[]models.ContactSummary}
// @Router       /contacts [get]
// @Security     BasicAuth
func ListContacts(w http.ResponseWriter, r *http.Request) {
	bookmarkedOnly, _ := strconv.ParseBool(r.URL.Query().Get("bookmarked"))
	contacts, err := Store.ListContacts(bookmarkedOnly)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// GetContact retrieves a single contact by ID
// @Summary      Get contact
// @Description  Get a contact with its full detail list.
// @Tags         contacts
// @Produce      json
// @Param        id   path      int  true  "Contact ID"
// @Success      200  {object}  Response{data=models.Contact}
// @Failure      404  {object}  Response{error=string}
// @Router       /contacts/{id} [get]
// @Security     BasicAuth
func GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := Store.GetContact(contactID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateContact creates a new contact
// @Summary      Create contact
// @Description  Create a contact with an ordered list of typed details.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      models.ContactInput  true  "Contact contents"
// @Success      201      {object}  Response{data=models.Contact}
// @Failure      400      {object}  Response{error=string}
// @Router       /contacts [post]
// @Security     BasicAuth
func CreateContact(w http.ResponseWriter, r *http.Request) {
	var input models.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := Store.CreateContact(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateContact updates an existing contact
// @Summary      Update contact
// @Description  Replace the name and the entire detail list of a contact. The bookmark flag is untouched.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Contact ID"
// @Param        contact  body      models.ContactInput  true  "Updated contact contents"
// @Success      200      {object}  Response{data=models.Contact}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /contacts/{id} [put]
// @Security     BasicAuth
func UpdateContact(w http.ResponseWriter, r *http.Request) {
	var input models.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := Store.UpdateContact(contactID(r), input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteContact deletes a contact
// @Summary      Delete contact
// @Description  Remove a contact and its details. A second delete on the same id fails with 404.
// @Tags         contacts
// @Produce      json
// @Param        id   path      int  true  "Contact ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /contacts/{id} [delete]
// @Security     BasicAuth
func DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := Store.DeleteContact(contactID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ToggleBookmark flips the bookmark flag of a contact
// @Summary      Toggle bookmark
// @Description  Flip the bookmark flag and return the updated contact.
// @Tags         contacts
// @Produce      json
// @Param        id   path      int  true  "Contact ID"
// @Success      200  {object}  Response{data=models.Contact}
// @Failure      404  {object}  Response{error=string}
// @Router       /contacts/{id}/bookmark [put]
// @Security     BasicAuth
func ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	c, err := Store.ToggleBookmark(contactID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

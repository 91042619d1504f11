package handlers

import (
	"net/http"

	"contactbook/codec"
)

// ExportContacts downloads the full contact set as a backup document
// @Summary      Export contacts
// @Description  Download all contacts as a JSON backup document. Ids are not part of the document.
// @Tags         transfer
// @Produce      json
// @Success      200  {object}  codec.Document
// @Router       /export [get]
// @Security     BasicAuth
func ExportContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := Store.AllContacts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	doc, err := codec.Marshal(contacts)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// ImportContacts uploads a backup document and creates its contacts
// @Summary      Import contacts
// @Description  Upload a backup document (multipart field "file"). The whole batch is applied in one transaction; an invalid record aborts the import and nothing is created.
// @Tags         transfer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Backup document"
// @Success      200   {object}  Response{data=map[string]int}
// @Failure      400   {object}  Response{error=string}
// @Router       /import [post]
// @Security     BasicAuth
func ImportContacts(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	records, err := codec.Parse(file)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	n, err := Store.ImportContacts(records)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactbook/db"
	"contactbook/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A pooled :memory: connection per goroutine would mean a database per
	// connection; keep a single one.
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database, db.DialectSQLite))
	t.Cleanup(func() { database.Close() })
	return New(database, db.DialectSQLite)
}

func strptr(s string) *string { return &s }

func TestCreateContact(t *testing.T) {
	s := setupTestStore(t)

	c, err := s.CreateContact(models.ContactInput{
		Name: "Alice",
		Details: []models.ContactDetail{
			{Type: "phone", Value: "555-0100", Label: strptr("mobile")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "Alice", c.Name)
	assert.False(t, c.IsBookmarked)
	require.Len(t, c.Details, 1)
	assert.Equal(t, "phone", c.Details[0].Type)
	assert.Equal(t, "555-0100", c.Details[0].Value)
	require.NotNil(t, c.Details[0].Label)
	assert.Equal(t, "mobile", *c.Details[0].Label)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreateContactValidation(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name  string
		input models.ContactInput
	}{
		{"empty name", models.ContactInput{Name: ""}},
		{"unknown type", models.ContactInput{Name: "Bob", Details: []models.ContactDetail{{Type: "fax", Value: "555-0100"}}}},
		{"empty value", models.ContactInput{Name: "Bob", Details: []models.ContactDetail{{Type: "phone", Value: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateContact(tt.input)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	// Nothing was stored
	contacts, err := s.ListContacts(false)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestGetContact(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{
		Name: "Alice",
		Details: []models.ContactDetail{
			{Type: "email", Value: "alice@example.com", Label: strptr("work")},
			{Type: "phone", Value: "555-0100"},
		},
	})
	require.NoError(t, err)

	got, err := s.GetContact(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetContactNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetContact(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.CreateContact(models.ContactInput{Name: "Alice"})
	require.NoError(t, err)
	second, err := s.CreateContact(models.ContactInput{Name: "Bob"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Deleted ids are retired for good
	require.NoError(t, s.DeleteContact(second.ID))
	third, err := s.CreateContact(models.ContactInput{Name: "Carol"})
	require.NoError(t, err)
	assert.NotEqual(t, second.ID, third.ID)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestListContactsBookmarkFilter(t *testing.T) {
	s := setupTestStore(t)

	alice, err := s.CreateContact(models.ContactInput{Name: "Alice"})
	require.NoError(t, err)
	_, err = s.CreateContact(models.ContactInput{Name: "Bob"})
	require.NoError(t, err)
	carol, err := s.CreateContact(models.ContactInput{Name: "Carol"})
	require.NoError(t, err)

	_, err = s.ToggleBookmark(alice.ID)
	require.NoError(t, err)
	_, err = s.ToggleBookmark(carol.ID)
	require.NoError(t, err)

	all, err := s.ListContacts(false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Creation order
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{all[0].Name, all[1].Name, all[2].Name})

	bookmarked, err := s.ListContacts(true)
	require.NoError(t, err)
	require.Len(t, bookmarked, 2)
	for _, c := range bookmarked {
		assert.True(t, c.IsBookmarked)
	}
	assert.Equal(t, alice.ID, bookmarked[0].ID)
	assert.Equal(t, carol.ID, bookmarked[1].ID)
}

func TestUpdateContact(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{
		Name:    "Alice",
		Details: []models.ContactDetail{{Type: "phone", Value: "555-0100", Label: strptr("mobile")}},
	})
	require.NoError(t, err)
	_, err = s.ToggleBookmark(created.ID)
	require.NoError(t, err)

	updated, err := s.UpdateContact(created.ID, models.ContactInput{
		Name: "Alice Smith",
		Details: []models.ContactDetail{
			{Type: "email", Value: "alice@example.com", Label: strptr("work")},
			{Type: "social_media", Value: "@alice"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.True(t, updated.IsBookmarked, "update must not touch the bookmark flag")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Len(t, updated.Details, 2)
	assert.Equal(t, "email", updated.Details[0].Type)
	assert.Equal(t, "social_media", updated.Details[1].Type)
	assert.Nil(t, updated.Details[1].Label)
}

func TestUpdateContactToEmptyDetails(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{
		Name:    "Alice",
		Details: []models.ContactDetail{{Type: "phone", Value: "555-0100"}},
	})
	require.NoError(t, err)

	updated, err := s.UpdateContact(created.ID, models.ContactInput{Name: "Alice Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, []models.ContactDetail{}, updated.Details)
}

func TestUpdateContactNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.UpdateContact(42, models.ContactInput{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateContactInvalidLeavesRecordIntact(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{
		Name:    "Alice",
		Details: []models.ContactDetail{{Type: "phone", Value: "555-0100"}},
	})
	require.NoError(t, err)

	_, err = s.UpdateContact(created.ID, models.ContactInput{
		Name:    "Alice Smith",
		Details: []models.ContactDetail{{Type: "fax", Value: "nope"}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	got, err := s.GetContact(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestDeleteContact(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteContact(created.ID))

	_, err = s.GetContact(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Delete is not idempotent
	assert.ErrorIs(t, s.DeleteContact(created.ID), ErrNotFound)
	assert.ErrorIs(t, s.DeleteContact(999), ErrNotFound)
}

func TestToggleBookmarkIsItsOwnInverse(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateContact(models.ContactInput{Name: "Alice"})
	require.NoError(t, err)
	require.False(t, created.IsBookmarked)

	once, err := s.ToggleBookmark(created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsBookmarked)

	twice, err := s.ToggleBookmark(created.ID)
	require.NoError(t, err)
	assert.False(t, twice.IsBookmarked)

	_, err = s.ToggleBookmark(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailOrderPreserved(t *testing.T) {
	s := setupTestStore(t)

	details := []models.ContactDetail{
		{Type: "social_media", Value: "@alice"},
		{Type: "phone", Value: "555-0100", Label: strptr("mobile")},
		{Type: "phone", Value: "555-0199", Label: strptr("work")},
		{Type: "email", Value: "alice@example.com"},
		{Type: "address", Value: "1 Main St", Label: strptr("home")},
	}
	created, err := s.CreateContact(models.ContactInput{Name: "Alice", Details: details})
	require.NoError(t, err)
	assert.Equal(t, details, created.Details)

	got, err := s.GetContact(created.ID)
	require.NoError(t, err)
	assert.Equal(t, details, got.Details)
}

func TestImportContacts(t *testing.T) {
	s := setupTestStore(t)

	records := []models.ContactRecord{
		{Name: "Alice", IsBookmarked: true, Details: []models.ContactDetail{
			{Type: "phone", Value: "555-0100", Label: strptr("mobile")},
		}},
		{Name: "Bob", Details: []models.ContactDetail{}},
	}
	n, err := s.ImportContacts(records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.AllContacts()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)
	assert.True(t, all[0].IsBookmarked)
	require.Len(t, all[0].Details, 1)
	assert.Equal(t, "555-0100", all[0].Details[0].Value)
	assert.Equal(t, "Bob", all[1].Name)
	assert.False(t, all[1].IsBookmarked)
}

func TestImportContactsIsAtomic(t *testing.T) {
	s := setupTestStore(t)

	records := []models.ContactRecord{
		{Name: "Alice"},
		{Name: "Bob"},
		{Name: "", Details: []models.ContactDetail{{Type: "phone", Value: "555-0100"}}},
	}
	_, err := s.ImportContacts(records)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 2, ve.Record)

	// Nothing from the batch landed
	contacts, err := s.ListContacts(false)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

// The full lifecycle in one pass: create, update, bookmark, delete.
func TestContactLifecycle(t *testing.T) {
	s := setupTestStore(t)

	c, err := s.CreateContact(models.ContactInput{
		Name:    "Alice",
		Details: []models.ContactDetail{{Type: "phone", Value: "555-0100", Label: strptr("mobile")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.False(t, c.IsBookmarked)

	c, err = s.UpdateContact(1, models.ContactInput{Name: "Alice Smith"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "Alice Smith", c.Name)
	assert.False(t, c.IsBookmarked)
	assert.Empty(t, c.Details)

	c, err = s.ToggleBookmark(1)
	require.NoError(t, err)
	assert.True(t, c.IsBookmarked)

	require.NoError(t, s.DeleteContact(1))
	_, err = s.GetContact(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

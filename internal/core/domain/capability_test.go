package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	capAdmin  = &User{ID: 1, Username: "root", Role: RoleAdmin}
	capAuthor = &User{ID: 2, Username: "alice", Role: RoleUser}
	capWriter = &User{ID: 3, Username: "bob", Role: RoleUser}
	capReader = &User{ID: 4, Username: "carol", Role: RoleUser}
	capOther  = &User{ID: 5, Username: "dave", Role: RoleUser}
)

func capPage(public bool) *Page {
	return &Page{ID: 10, Title: "Page", IsPublic: public, Author: UserRef{ID: capAuthor.ID, Username: capAuthor.Username}}
}

func capCollaborators() []Collaborator {
	return []Collaborator{
		{ID: 1, PageID: 10, User: UserRef{ID: capWriter.ID}, AccessLevel: AccessWrite},
		{ID: 2, PageID: 10, User: UserRef{ID: capReader.ID}, AccessLevel: AccessRead},
	}
}

func TestCanAccess(t *testing.T) {
	collabs := capCollaborators()
	private := capPage(false)
	public := capPage(true)

	// Public pages are visible to everyone including guests.
	assert.True(t, CanAccess(nil, public, nil))
	assert.True(t, CanAccess(capOther, public, nil))

	// Private pages: admin, author, any collaborator.
	assert.True(t, CanAccess(capAdmin, private, nil))
	assert.True(t, CanAccess(capAuthor, private, nil))
	assert.True(t, CanAccess(capWriter, private, collabs))
	assert.True(t, CanAccess(capReader, private, collabs))
	assert.False(t, CanAccess(capOther, private, collabs))
	assert.False(t, CanAccess(nil, private, collabs))
}

func TestCanEdit(t *testing.T) {
	collabs := capCollaborators()
	page := capPage(false)

	assert.True(t, CanEdit(capAdmin, page, nil))
	assert.True(t, CanEdit(capAuthor, page, nil))
	assert.True(t, CanEdit(capWriter, page, collabs))

	// Read collaborators and strangers cannot edit; neither can guests.
	assert.False(t, CanEdit(capReader, page, collabs))
	assert.False(t, CanEdit(capOther, page, collabs))
	assert.False(t, CanEdit(nil, page, collabs))

	// A public page is still not editable by arbitrary users.
	assert.False(t, CanEdit(capOther, capPage(true), nil))
}

func TestCanDelete(t *testing.T) {
	page := capPage(false)
	collabs := capCollaborators()

	assert.True(t, CanDelete(capAdmin, page))
	assert.True(t, CanDelete(capAuthor, page))

	// Write access does not grant deletion.
	assert.False(t, CanDelete(capWriter, page))
	assert.False(t, CanDelete(nil, page))

	_ = collabs // deletion ignores the collaborator list entirely
}

func TestCanManageCollaborators(t *testing.T) {
	collabs := capCollaborators()
	page := capPage(false)

	assert.True(t, CanManageCollaborators(capAuthor, page, nil))
	assert.True(t, CanManageCollaborators(capWriter, page, collabs))
	assert.False(t, CanManageCollaborators(capReader, page, collabs))
}

func TestAccessLevel_Valid(t *testing.T) {
	assert.True(t, AccessRead.Valid())
	assert.True(t, AccessWrite.Valid())
	assert.False(t, AccessLevel("owner").Valid())
	assert.False(t, AccessLevel("").Valid())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, capAdmin.IsAdmin())
	assert.False(t, capAuthor.IsAdmin())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
}

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Token: "tok"}.Authenticated())
	assert.False(t, Session{User: capAuthor}.Authenticated())
	assert.True(t, Session{User: capAuthor, Token: "tok"}.Authenticated())
}

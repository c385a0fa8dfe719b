package domain

// Capability checks mirror the server's access rules so views can decide
// what to render. They carry zero security weight: the server enforces
// every rule again on each request.

// CanAccess reports whether the user may view the page.
// Public pages are visible to everyone, including guests. Private pages
// are visible to admins, the author, and any collaborator.
func CanAccess(user *User, page *Page, collaborators []Collaborator) bool {
	if page == nil {
		return false
	}
	if page.IsPublic {
		return true
	}
	if user == nil {
		return false
	}
	if user.IsAdmin() || page.Author.ID == user.ID {
		return true
	}
	return collaboratorLevel(user, collaborators) != ""
}

// CanEdit reports whether the user may edit the page or create child
// pages under it. Admins, the author, and write collaborators may.
func CanEdit(user *User, page *Page, collaborators []Collaborator) bool {
	if user == nil || page == nil {
		return false
	}
	if user.IsAdmin() || page.Author.ID == user.ID {
		return true
	}
	return collaboratorLevel(user, collaborators) == AccessWrite
}

// CanDelete reports whether the user may delete the page.
// Only the author and admins may; write collaborators may not.
func CanDelete(user *User, page *Page) bool {
	if user == nil || page == nil {
		return false
	}
	return user.IsAdmin() || page.Author.ID == user.ID
}

// CanManageCollaborators reports whether the user may view or change the
// page's collaborator list. The server gates this on edit rights.
func CanManageCollaborators(user *User, page *Page, collaborators []Collaborator) bool {
	return CanEdit(user, page, collaborators)
}

func collaboratorLevel(user *User, collaborators []Collaborator) AccessLevel {
	for _, c := range collaborators {
		if c.User.ID == user.ID {
			return c.AccessLevel
		}
	}
	return ""
}

package domain

// Identity is the decoded subject of a verified credential. It is a
// snapshot taken at token issuance: profile or role changes after
// issuance are not reflected until a new token is issued.
type Identity struct {
	UserID            int64
	FirstName         string
	LastName          string
	Role              Role
	ProfilePictureURL *string
}

// FullName joins the display name fields.
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

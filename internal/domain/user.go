package domain

// User is the profile snapshot cached at login. IsHOD marks heads of
// department, who may approve/reject requests and edit them outside PENDING.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsHOD     bool   `json:"is_hod"`
}

// FullName returns "First Last", falling back to the username when both
// name fields are empty.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HODUser is one entry of the eligible-approver listing.
type HODUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the approver label shown in selection lists.
func (h HODUser) DisplayName() string {
	return h.FirstName + " " + h.LastName
}

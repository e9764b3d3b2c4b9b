package domain

// UserView is the public projection of a User. It never carries the password.
type UserView struct {
	ID      int64   `json:"id"`
	Name    *string `json:"name"`
	Email   string  `json:"email"`
	IsAdmin bool    `json:"is_admin"`
}

// NewUserView projects a single user. The returned view shares no memory with u.
func NewUserView(u *User) UserView {
	v := UserView{
		ID:      u.ID,
		IsAdmin: u.IsAdmin,
	}
	if u.Name != nil {
		name := *u.Name
		v.Name = &name
	}
	if u.Email != nil {
		v.Email = *u.Email
	}
	return v
}

// NewUserViews projects a sequence of users, preserving order. A nil or empty
// input yields an empty, non-nil slice so it serializes as [].
func NewUserViews(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views
}

package discussion

// RoleAdmin is the authority role: it may edit or delete any content and is
// the only role allowed to accept answers.
const RoleAdmin = "admin"

// Actor is the identity performing an operation. It is taken as given from
// the caller; the board never authenticates it.
type Actor struct {
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

func (a Actor) IsAuthority() bool {
	return a.Role == RoleAdmin
}

// CanMutate reports whether actor may edit or delete content written by author.
func CanMutate(actor Actor, author string) bool {
	if actor.IsAuthority() {
		return true
	}
	return actor.UserName != "" && actor.UserName == author
}

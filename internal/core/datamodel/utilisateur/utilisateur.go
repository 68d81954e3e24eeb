package utilisateur

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Utilisateur is a console account. The password hash stays in the backend
// and is never decoded here.
type Utilisateur struct {
	Matricule string `json:"matricule"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Nom       string `json:"nom,omitempty"`
	Prenom    string `json:"prenom,omitempty"`
	Email     string `json:"email,omitempty"`
	Poste     string `json:"poste,omitempty"`
	Projet    string `json:"projet,omitempty"`
}

func (u Utilisateur) Key() string {
	return u.Matricule
}

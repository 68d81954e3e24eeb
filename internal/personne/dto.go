package personne

type PersonneDTO struct {
	Matricule string `json:"matricule" validate:"required"`
	Nom       string `json:"nom" validate:"required"`
	Prenom    string `json:"prenom" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Telephone string `json:"telephone,omitempty"`
	Poste     string `json:"poste,omitempty"`
	Projet    string `json:"projet,omitempty"`
}

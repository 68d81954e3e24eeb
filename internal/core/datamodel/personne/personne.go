package personne

type Personne struct {
	Matricule string `json:"matricule"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Poste     string `json:"poste,omitempty"`
	Projet    string `json:"projet,omitempty"`
}

func (p Personne) Key() string {
	return p.Matricule
}

func (p Personne) FullName() string {
	if p.Prenom == "" {
		return p.Nom
	}
	return p.Prenom + " " + p.Nom
}

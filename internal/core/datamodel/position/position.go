package position

import "strconv"

type Position struct {
	ID       int64  `json:"id"`
	Libelle  string `json:"libelle"`
	Port     string `json:"port"`
	Occupe   bool   `json:"occupe"`
	SalleID  int64  `json:"salle_id"`
	SalleNom string `json:"salle_nom,omitempty"`
}

func (p Position) Key() string {
	return strconv.FormatInt(p.ID, 10)
}

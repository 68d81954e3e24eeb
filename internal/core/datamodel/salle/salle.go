package salle

import "strconv"

type Salle struct {
	ID    int64  `json:"id"`
	Nom   string `json:"nom"`
	Etage int    `json:"etage"`
	Site  string `json:"site"`
}

func (s Salle) Key() string {
	return strconv.FormatInt(s.ID, 10)
}
